package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/parapharma/storefront/internal/cart"
	"github.com/parapharma/storefront/internal/catalog"
	"github.com/parapharma/storefront/internal/checkout"
)

//
// ---------- STUBS & FAKES ----------
//

// stubCatalog implements catalog.Repository in memory. A non-nil err makes
// every read fail, like an unreachable data store.
type stubCatalog struct {
	products   []catalog.Product
	categories []catalog.Category
	err        error
}

func (s *stubCatalog) List(ctx context.Context, sort catalog.Sort) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]catalog.Product(nil), s.products...), nil
}

func (s *stubCatalog) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) ListByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []catalog.Product
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListByBrand(ctx context.Context, brand string) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []catalog.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Brand), strings.ToLower(brand)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []catalog.Product
	for _, p := range s.products {
		if p.Featured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListPromotions(ctx context.Context) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []catalog.Product
	for _, p := range s.products {
		if p.OriginalPrice.Valid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) Search(ctx context.Context, q string) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	q = strings.ToLower(q)
	var out []catalog.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListBrands(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			out = append(out, p.Brand)
		}
	}
	return out, nil
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]catalog.Category(nil), s.categories...), nil
}

func (s *stubCatalog) GetCategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.categories {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, catalog.ErrNotFound
}

// stubOrders implements checkout.Repository, optionally failing Create or
// reads.
type stubOrders struct {
	failCreate bool
	failReads  bool
	lastOrder  *checkout.Order
	lastItems  []checkout.OrderItem
}

func (s *stubOrders) Create(ctx context.Context, o *checkout.Order, items []checkout.OrderItem) error {
	if s.failCreate {
		return errors.New("insert rejected")
	}
	cp := *o
	s.lastOrder = &cp
	s.lastItems = append([]checkout.OrderItem(nil), items...)
	return nil
}

func (s *stubOrders) GetByNumber(ctx context.Context, orderNumber string) (*checkout.Order, []checkout.OrderItem, error) {
	if s.failReads {
		return nil, nil, errors.New("connection refused")
	}
	if s.lastOrder == nil || s.lastOrder.OrderNumber != orderNumber {
		return nil, nil, checkout.ErrNotFound
	}
	return s.lastOrder, s.lastItems, nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() *stubCatalog {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &stubCatalog{
		products: []catalog.Product{
			{ID: "p1", Name: "Creme X", Slug: "creme-x", Brand: "Vichy", Price: price("40.00"),
				CategoryID: "c1", InStock: true, Featured: true, CreatedAt: base.Add(time.Hour)},
			{ID: "p2", Name: "Vichy Normaderm", Slug: "vichy-normaderm", Brand: "OtherCo", Price: price("120.00"),
				CategoryID: "c1", InStock: true, CreatedAt: base.Add(2 * time.Hour)},
			{ID: "p3", Name: "Gel Rupture", Slug: "gel-rupture", Brand: "Avène", Price: price("75.50"),
				CategoryID: "c2", InStock: false, CreatedAt: base.Add(3 * time.Hour)},
		},
		categories: []catalog.Category{
			{ID: "c1", Name: "Soins Visage", Slug: "soins-visage"},
			{ID: "c2", Name: "Cheveux", Slug: "cheveux"},
		},
	}
}

// newRouter wires the handlers exactly like main.
func newRouter(repo catalog.Repository, orders checkout.Repository, carts *cart.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := checkout.NewService(orders, nil)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/home", homeHandler(repo))
	api.GET("/catalogue", catalogueHandler(repo))
	api.GET("/categories/:slug", categoryHandler(repo))
	api.GET("/brands/:slug", brandHandler(repo))
	api.GET("/promos", promosHandler(repo))
	api.GET("/search", searchHandler(repo))
	api.GET("/products/:slug", productHandler(repo))
	api.GET("/cart", getCartHandler(carts))
	api.POST("/cart/items", addCartItemHandler(carts, repo))
	api.PUT("/cart/items/:productId", updateCartItemHandler(carts))
	api.DELETE("/cart/items/:productId", removeCartItemHandler(carts))
	api.DELETE("/cart", clearCartHandler(carts))
	api.POST("/checkout", checkoutHandler(svc, carts))
	api.GET("/orders/:orderNumber", orderHandler(orders))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	// Stable cart identity across requests in a test.
	req.AddCookie(&http.Cookie{Name: cartCookie, Value: "test-cart"})
	r.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

//
// ---------- TESTS ----------
//

func TestSearch_EmptyQueryPromptsForInput(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, body := doJSON(t, r, http.MethodGet, "/api/search", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if body["query_required"] != true {
		t.Fatalf("expected query_required, got %v", body)
	}
	if n, _ := body["count"].(float64); n != 0 {
		t.Fatalf("empty query must not return products, count=%v", body["count"])
	}
}

func TestSearch_MatchesNameAndBrand(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, body := doJSON(t, r, http.MethodGet, "/api/search?q=vichy", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	// p1 matches by brand, p2 by name.
	if n, _ := body["count"].(float64); n != 2 {
		t.Fatalf("count=%v, want 2; body=%s", body["count"], w.Body.String())
	}
}

func TestProductDetail_NotFound(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, _ := doJSON(t, r, http.MethodGet, "/api/products/does-not-exist", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestCategory_NotFoundAndFiltering(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, _ := doJSON(t, r, http.MethodGet, "/api/categories/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}

	w, body := doJSON(t, r, http.MethodGet, "/api/categories/soins-visage?price=100-200", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if n, _ := body["count"].(float64); n != 1 {
		t.Fatalf("count=%v, want 1 (only p2 in bucket)", body["count"])
	}
}

func TestBrandPage_FallbackCopyAnd404(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, body := doJSON(t, r, http.MethodGet, "/api/brands/vichy", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	brand, _ := body["brand"].(map[string]any)
	if brand["tagline"] == "" {
		t.Fatalf("missing brand copy: %v", body)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/brands/no-such-brand", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestCart_AddTwiceMergesAndTotals(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	for i := 0; i < 2; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"creme-x"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("add status=%d body=%s", w.Code, w.Body.String())
		}
	}

	w, body := doJSON(t, r, http.MethodGet, "/api/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if n, _ := body["total_items"].(float64); n != 2 {
		t.Fatalf("total_items=%v, want 2", body["total_items"])
	}
	if body["subtotal"] != "80.00" {
		t.Fatalf("subtotal=%v, want 80.00", body["subtotal"])
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("lines=%d, want 1 merged line", len(items))
	}
}

func TestCart_AddOutOfStockRejected(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, _ := doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"gel-rupture"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", w.Code)
	}
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"creme-x"}`)
	w, body := doJSON(t, r, http.MethodPut, "/api/cart/items/p1", `{"quantity":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if n, _ := body["total_items"].(float64); n != 0 {
		t.Fatalf("total_items=%v, want 0", body["total_items"])
	}
}

func TestCheckout_WriteFailurePreservesCart(t *testing.T) {
	orders := &stubOrders{failCreate: true}
	carts := cart.NewManager(nil)
	r := newRouter(testCatalog(), orders, carts)

	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"creme-x"}`)

	form := `{"customer_name":"Amina","customer_email":"amina@example.com","customer_phone":"+212612345678","shipping_address":"12 Rue des Orangers","city":"Casablanca"}`
	w, body := doJSON(t, r, http.MethodPost, "/api/checkout", form)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502; body=%s", w.Code, w.Body.String())
	}
	if body["retryable"] != true {
		t.Fatalf("error must be retryable: %v", body)
	}

	// The cart still holds the original line.
	_, cartBody := doJSON(t, r, http.MethodGet, "/api/cart", "")
	if n, _ := cartBody["total_items"].(float64); n != 1 {
		t.Fatalf("cart lost items after failed checkout: %v", cartBody)
	}
}

func TestCheckout_SuccessClearsCartAndConfirms(t *testing.T) {
	orders := &stubOrders{}
	carts := cart.NewManager(nil)
	r := newRouter(testCatalog(), orders, carts)

	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"creme-x"}`)
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"vichy-normaderm"}`)

	form := `{"customer_name":"Amina","customer_email":"amina@example.com","customer_phone":"+212612345678","shipping_address":"12 Rue des Orangers","city":"Casablanca"}`
	w, body := doJSON(t, r, http.MethodPost, "/api/checkout", form)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	orderNumber, _ := body["order_number"].(string)
	if orderNumber == "" {
		t.Fatalf("missing order_number: %v", body)
	}

	// Cart cleared only after the write succeeded.
	_, cartBody := doJSON(t, r, http.MethodGet, "/api/cart", "")
	if n, _ := cartBody["total_items"].(float64); n != 0 {
		t.Fatalf("cart not cleared: %v", cartBody)
	}

	// Confirmation view reads the order back by number.
	w, confirm := doJSON(t, r, http.MethodGet, "/api/orders/"+orderNumber, "")
	if w.Code != http.StatusOK {
		t.Fatalf("confirmation status=%d", w.Code)
	}
	items, _ := confirm["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("confirmation items=%d, want 2", len(items))
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	form := `{"customer_name":"Amina","customer_email":"amina@example.com","customer_phone":"+212612345678","shipping_address":"12 Rue des Orangers","city":"Casablanca"}`
	w, _ := doJSON(t, r, http.MethodPost, "/api/checkout", form)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", w.Code)
	}
}

func TestCheckout_ValidationErrors(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"slug":"creme-x"}`)
	w, body := doJSON(t, r, http.MethodPost, "/api/checkout", `{"customer_name":"Amina"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400; body=%s", w.Code, w.Body.String())
	}
	fields, _ := body["fields"].(map[string]any)
	if fields["customer_email"] == nil || fields["city"] == nil {
		t.Fatalf("missing validation fields: %v", body)
	}
}

func TestOrderConfirmation_NotFound(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, _ := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/CMD-%d-XXXX", time.Now().UnixMilli()), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestCatalogue_RepoFailureIsNotEmpty(t *testing.T) {
	// An unreachable catalogue reads as an error, never as zero products.
	broken := &stubCatalog{err: errors.New("connection refused")}
	r := newRouter(broken, &stubOrders{}, cart.NewManager(nil))

	w, body := doJSON(t, r, http.MethodGet, "/api/catalogue", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502; body=%s", w.Code, w.Body.String())
	}
	if body["error"] == nil {
		t.Fatalf("missing error body: %s", w.Body.String())
	}

	// The same view over a healthy but empty catalogue is a plain empty page.
	r = newRouter(&stubCatalog{}, &stubOrders{}, cart.NewManager(nil))
	w, body = doJSON(t, r, http.MethodGet, "/api/catalogue", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200; body=%s", w.Code, w.Body.String())
	}
	if n, _ := body["count"].(float64); n != 0 {
		t.Fatalf("count=%v, want 0", body["count"])
	}
}

func TestOrderConfirmation_ReadFailureIs502(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{failReads: true}, cart.NewManager(nil))

	w, _ := doJSON(t, r, http.MethodGet, "/api/orders/CMD-1234-ABCD", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502; down store must not read as missing order", w.Code)
	}
}

func TestCatalogue_FilterAndSortParams(t *testing.T) {
	r := newRouter(testCatalog(), &stubOrders{}, cart.NewManager(nil))

	w, body := doJSON(t, r, http.MethodGet, "/api/catalogue?sort=price-low&price=all", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	products, _ := body["products"].([]any)
	if len(products) != 3 {
		t.Fatalf("products=%d, want 3", len(products))
	}
	first, _ := products[0].(map[string]any)
	if first["id"] != "p1" {
		t.Fatalf("cheapest first expected p1, got %v", first["id"])
	}
}
