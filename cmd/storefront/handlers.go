package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parapharma/storefront/internal/catalog"
	"github.com/parapharma/storefront/internal/checkout"
	"github.com/parapharma/storefront/internal/content"
)

// filterCriteria reads the filter/sort query params shared by the
// catalogue-style views.
func filterCriteria(c *gin.Context) catalog.Criteria {
	return catalog.Criteria{
		Query: c.Query("q"),
		Brand: c.Query("brand"),
		Price: c.Query("price"),
		Sort:  c.Query("sort"),
	}
}

func fetchFailed(c *gin.Context) {
	c.JSON(http.StatusBadGateway, gin.H{"error": "catalogue temporarily unavailable"})
}

// GET /api/home — featured products and top categories for the landing page.
func homeHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured, err := repo.ListFeatured(c.Request.Context(), 8)
		if err != nil {
			fetchFailed(c)
			return
		}
		categories, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}
		if len(categories) > 6 {
			categories = categories[:6]
		}
		c.JSON(http.StatusOK, gin.H{
			"featured_products": featured,
			"categories":        categories,
		})
	}
}

// GET /api/catalogue — the full collection through the filter pipeline,
// plus the category and brand lists feeding the filter controls.
func catalogueHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.List(c.Request.Context(), catalog.SortNewest)
		if err != nil {
			fetchFailed(c)
			return
		}
		categories, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}
		brands, err := repo.ListBrands(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}

		filtered := catalog.Apply(products, filterCriteria(c))
		c.JSON(http.StatusOK, gin.H{
			"products":   filtered,
			"count":      len(filtered),
			"categories": categories,
			"brands":     brands,
		})
	}
}

// GET /api/categories
func categoriesHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// GET /api/categories/:slug — the category and its products through the
// filter pipeline.
func categoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := repo.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			fetchFailed(c)
			return
		}
		products, err := repo.ListByCategory(c.Request.Context(), cat.ID)
		if err != nil {
			fetchFailed(c)
			return
		}
		filtered := catalog.Apply(products, filterCriteria(c))
		c.JSON(http.StatusOK, gin.H{
			"category": cat,
			"products": filtered,
			"count":    len(filtered),
		})
	}
}

// GET /api/brands
func brandsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		brands, err := repo.ListBrands(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}
		type brandView struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		out := make([]brandView, 0, len(brands))
		for _, b := range brands {
			out = append(out, brandView{Name: b, Slug: catalog.BrandSlug(b)})
		}
		c.JSON(http.StatusOK, gin.H{"brands": out})
	}
}

// GET /api/brands/:slug — brand hero copy plus the brand's products.
// The slug is mapped back to a name and matched partially, case-insensitive.
func brandHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := catalog.BrandFromSlug(c.Param("slug"))
		products, err := repo.ListByBrand(c.Request.Context(), name)
		if err != nil {
			fetchFailed(c)
			return
		}
		if len(products) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
			return
		}
		filtered := catalog.Apply(products, filterCriteria(c))
		c.JSON(http.StatusOK, gin.H{
			"brand":    catalog.BrandCopy(products[0].Brand),
			"products": filtered,
			"count":    len(filtered),
		})
	}
}

// GET /api/promos — products with a discount (original price present).
func promosHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListPromotions(c.Request.Context())
		if err != nil {
			fetchFailed(c)
			return
		}
		filtered := catalog.Apply(products, filterCriteria(c))
		c.JSON(http.StatusOK, gin.H{"products": filtered, "count": len(filtered)})
	}
}

// GET /api/search?q= — an empty query is a prompt for input, not the full
// catalogue.
func searchHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if len(q) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"query":          "",
				"query_required": true,
				"results":        []catalog.Product{},
				"count":          0,
			})
			return
		}
		results, err := repo.Search(c.Request.Context(), q)
		if err != nil {
			fetchFailed(c)
			return
		}
		sorted := catalog.Apply(results, catalog.Criteria{Sort: c.Query("sort")})
		c.JSON(http.StatusOK, gin.H{
			"query":   q,
			"results": sorted,
			"count":   len(sorted),
		})
	}
}

// GET /api/products/:slug — product detail with related products from the
// same category.
func productHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		var related []catalog.Product
		if p.CategoryID != "" {
			sameCategory, err := repo.ListByCategory(c.Request.Context(), p.CategoryID)
			if err == nil {
				for _, rp := range sameCategory {
					if rp.ID == p.ID {
						continue
					}
					related = append(related, rp)
					if len(related) == 4 {
						break
					}
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"product":          p,
			"discount_percent": p.DiscountPercent(),
			"related_products": related,
		})
	}
}

// GET /api/orders/:orderNumber — confirmation view read.
func orderHandler(repo checkout.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			if errors.Is(err, checkout.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			fetchFailed(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}

// GET /api/faq
func faqHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"faq": content.FAQ()})
	}
}

// GET /api/contact
func contactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"contact": content.Contact()})
	}
}
