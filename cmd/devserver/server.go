package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// backend is an in-memory stand-in for the production storefront API,
// used for local development and integration testing of the checkout
// flow. The gateway outcome is scripted: succeed after N polls, fail,
// or hang forever (to exercise the timeout path).
type backend struct {
	mu sync.Mutex

	log      *slog.Logger
	products map[string]product
	orders   map[string]*order
	byRef    map[string]*order

	nextOrderID  int
	succeedAfter int
	outcome      string // "success", "fail" or "hang"
}

type product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Kind     string `json:"type"`
	ImageURL string `json:"image_url"`
}

type orderLine struct {
	Product  string
	Qty      int32
	Name     string
	Unit     int64
	Physical bool
}

type order struct {
	ID          string
	Reference   string
	FullName    string
	Phone       string
	Email       string
	Address     string
	Lines       []orderLine
	TotalAmount int64
	Status      string
	MomoStatus  string
	MomoRef     string
	Polls       int
}

func newBackend(log *slog.Logger, succeedAfter int, outcome string) *backend {
	b := &backend{
		log:          log,
		products:     map[string]product{},
		orders:       map[string]*order{},
		byRef:        map[string]*order{},
		nextOrderID:  1,
		succeedAfter: succeedAfter,
		outcome:      outcome,
	}
	b.seed()
	return b
}

func (b *backend) seed() {
	for _, p := range []product{
		{ID: "1", Name: "Tray of Eggs", Price: 8000, Kind: "PHYSICAL", ImageURL: "/media/eggs.jpg"},
		{ID: "2", Name: "Honey Jar 500g", Price: 25000, Kind: "PHYSICAL", ImageURL: "/media/honey.jpg"},
		{ID: "3", Name: "Poultry Farming Guide (PDF)", Price: 15000, Kind: "DIGITAL"},
	} {
		b.products[p.ID] = p
	}
}

func newRouter(b *backend) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/public")
	api.GET("/bootstrap/", b.bootstrap)
	api.GET("/products/", b.listProducts)
	api.GET("/products/:id/", b.getProduct)
	api.POST("/orders/", b.createOrder)
	api.POST("/momo/initiate/", b.momoInitiate)
	api.GET("/momo/status/:reference_id/", b.momoStatus)

	return r
}

func (b *backend) bootstrap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"store_name":      "Neesté Farm Store",
			"tagline":         "Fresh from the farm",
			"primary_color":   "#facc15",
			"secondary_color": "#0b1220",
			"whatsapp_number": "256777000000",
		},
	})
}

func (b *backend) listProducts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (b *backend) getProduct(c *gin.Context) {
	b.mu.Lock()
	p, ok := b.products[c.Param("id")]
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type createOrderBody struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Items    []struct {
		Product string `json:"product" binding:"required"`
		Qty     int32  `json:"qty"`
	} `json:"items" binding:"required,min=1"`
}

func (b *backend) createOrder(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idNum := b.nextOrderID
	o := &order{
		ID:        fmt.Sprintf("%d", idNum),
		Reference: orderReference(),
		FullName:  body.FullName,
		Phone:     body.Phone,
		Email:     body.Email,
		Address:   body.Address,
		Status:    "CREATED",
	}
	b.nextOrderID++

	for _, it := range body.Items {
		p, ok := b.products[it.Product]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Unknown product " + it.Product})
			return
		}
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		o.Lines = append(o.Lines, orderLine{
			Product:  p.ID,
			Qty:      qty,
			Name:     p.Name,
			Unit:     p.Price,
			Physical: p.Kind == "PHYSICAL",
		})
		o.TotalAmount += p.Price * int64(qty)
	}

	b.orders[o.ID] = o
	b.log.Info("order created",
		slog.String("order_id", o.ID),
		slog.String("reference", o.Reference),
		slog.Int64("total", o.TotalAmount))

	c.JSON(http.StatusCreated, gin.H{
		"id":           idNum,
		"reference":    o.Reference,
		"status":       o.Status,
		"total_amount": o.TotalAmount,
	})
}

type initiateBody struct {
	OrderID     string `json:"order_id" binding:"required"`
	PayerMSISDN string `json:"payer_msisdn" binding:"required"`
}

func (b *backend) momoInitiate(c *gin.Context) {
	var body initiateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[body.OrderID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Unknown order"})
		return
	}

	o.MomoRef = uuid.NewString()
	o.MomoStatus = "PENDING"
	b.byRef[o.MomoRef] = o

	c.JSON(http.StatusOK, gin.H{
		"order_id":     o.ID,
		"reference_id": o.MomoRef,
		"status":       "PENDING",
	})
}

func (b *backend) momoStatus(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.byRef[c.Param("reference_id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Unknown reference"})
		return
	}

	o.Polls++
	switch {
	case b.outcome == "fail" && o.Polls >= b.succeedAfter:
		o.MomoStatus = "FAILED"
	case b.outcome == "success" && o.Polls >= b.succeedAfter:
		o.MomoStatus = "SUCCESSFUL"
		o.Status = "PAID"
	}

	links := []gin.H{}
	if o.Status == "PAID" {
		for _, line := range o.Lines {
			if !line.Physical {
				links = append(links, gin.H{
					"product": line.Name,
					"url":     "http://" + c.Request.Host + "/api/download/" + uuid.NewString() + "/",
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":       o.ID,
		"order_status":   o.Status,
		"momo_status":    o.MomoStatus,
		"download_links": links,
	})
}

// orderReference mimics the production backend's short human reference.
func orderReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
