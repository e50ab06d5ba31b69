// Package content holds the static storefront content: FAQ entries and the
// store contact information.
package content

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQCategory struct {
	Category  string     `json:"category"`
	Questions []FAQEntry `json:"questions"`
}

type ContactInfo struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	Hours     string `json:"hours"`
}

func FAQ() []FAQCategory {
	return faqCategories
}

func Contact() ContactInfo {
	return contactInfo
}

var contactInfo = ContactInfo{
	StoreName: "Parapharma",
	Tagline:   "Votre parapharmacie en ligne de confiance au Maroc. Produits authentiques, conseils d'experts.",
	Phone:     "+212600000000",
	WhatsApp:  "+212600000000",
	Email:     "contact@parapharma.ma",
	Country:   "Maroc",
	Hours:     "Lun-Sam 9h-19h",
}

var faqCategories = []FAQCategory{
	{
		Category: "Commandes",
		Questions: []FAQEntry{
			{
				Question: "Comment passer une commande ?",
				Answer:   "Vous pouvez passer une commande en ajoutant les produits à votre panier, puis en cliquant sur 'Passer la commande'. Remplissez vos informations de livraison et confirmez votre commande.",
			},
			{
				Question: "Puis-je modifier ma commande après l'avoir passée ?",
				Answer:   "Vous pouvez modifier votre commande dans les 2 heures suivant sa confirmation en nous contactant par téléphone ou WhatsApp.",
			},
			{
				Question: "Comment annuler ma commande ?",
				Answer:   "Pour annuler votre commande, contactez-nous immédiatement par téléphone ou WhatsApp avec votre numéro de commande.",
			},
		},
	},
	{
		Category: "Livraison",
		Questions: []FAQEntry{
			{
				Question: "Quels sont les délais de livraison ?",
				Answer:   "Nous livrons sous 2-3 jours ouvrables partout au Maroc. Les commandes passées avant 14h sont traitées le jour même.",
			},
			{
				Question: "Livrez-vous partout au Maroc ?",
				Answer:   "Oui, nous livrons dans toutes les villes du Maroc. Les frais de livraison sont gratuits pour les commandes de plus de 300 DH.",
			},
			{
				Question: "Comment suivre ma commande ?",
				Answer:   "Vous recevrez un SMS avec le statut de votre commande. Vous pouvez aussi nous contacter avec votre numéro de commande.",
			},
		},
	},
	{
		Category: "Paiement",
		Questions: []FAQEntry{
			{
				Question: "Quels modes de paiement acceptez-vous ?",
				Answer:   "Nous acceptons uniquement le paiement à la livraison en espèces. Vous payez lors de la réception de votre commande.",
			},
			{
				Question: "Est-ce que je peux payer en plusieurs fois ?",
				Answer:   "Actuellement, nous n'offrons pas de paiement en plusieurs fois. Le paiement se fait intégralement à la livraison.",
			},
			{
				Question: "Y a-t-il des frais supplémentaires ?",
				Answer:   "Les seuls frais supplémentaires sont les frais de livraison (30 DH) pour les commandes de moins de 300 DH.",
			},
		},
	},
	{
		Category: "Produits",
		Questions: []FAQEntry{
			{
				Question: "Vos produits sont-ils authentiques ?",
				Answer:   "Oui, tous nos produits sont 100% authentiques. Nous travaillons directement avec les laboratoires et distributeurs officiels.",
			},
			{
				Question: "Que faire si un produit ne me convient pas ?",
				Answer:   "Contactez-nous dans les 7 jours suivant la réception. Nous étudierons votre cas et trouverons une solution adaptée.",
			},
			{
				Question: "Comment conserver mes produits ?",
				Answer:   "Suivez les instructions sur l'emballage. En général, conservez dans un endroit sec et frais, à l'abri de la lumière directe.",
			},
		},
	},
}
