package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bakery-inventory/internal/service"
	"bakery-inventory/internal/store"
	"bakery-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Credentials is the single account allowed to use the API
type Credentials struct {
	Username string
	Password string
}

// Handler contains HTTP handlers
type Handler struct {
	store          *store.InventoryStore
	productService *service.ProductService
	orderService   *service.OrderService
	salesService   *service.SalesService
	credentials    Credentials
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store *store.InventoryStore,
	productService *service.ProductService,
	orderService *service.OrderService,
	salesService *service.SalesService,
	credentials Credentials,
) *Handler {
	return &Handler{
		store:          store,
		productService: productService,
		orderService:   orderService,
		salesService:   salesService,
		credentials:    credentials,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(loggingMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1", gin.BasicAuth(gin.Accounts{
		h.credentials.Username: h.credentials.Password,
	}))
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.POST("/products", h.createProduct)
		v1.PUT("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.POST("/orders/quote", h.quoteOrder)
		v1.POST("/orders", h.placeOrder)

		v1.GET("/sales", h.salesReport)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports degraded while either snapshot file failed its latest write
func (h *Handler) readinessCheck(c *gin.Context) {
	status := h.store.PersistStatus()
	if !status.OK() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"file":    status.File,
			"details": status.Err.Error(),
			"time":    time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.productService.List(c.Request.Context()),
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) quoteOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sale, err := h.orderService.Quote(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sale, err := h.orderService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) salesReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.salesService.Report(c.Request.Context()))
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Request failed"

	switch {
	case errors.Is(err, service.ErrInvalidProduct):
		status, message = http.StatusBadRequest, "Invalid product"
	case errors.Is(err, store.ErrInvalidQuantity):
		status, message = http.StatusBadRequest, "Invalid quantity"
	case errors.Is(err, store.ErrProductNotFound):
		status, message = http.StatusNotFound, "Product not found"
	case errors.Is(err, store.ErrInsufficientStock):
		status, message = http.StatusConflict, "Insufficient stock"
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// requestIDMiddleware tags every request with an id, keeping one sent by the client
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware writes one log line per request
func loggingMiddleware() gin.HandlerFunc {
	logger := util.GetLogger().Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")))
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
