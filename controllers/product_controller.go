package controllers

import (
	"errors"
	"net/http"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/models"
	"roopshree-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductController serves the public catalog plus the admin product surface.
// Catalog reads are thin enough to go straight to the repository.
type ProductController struct {
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
}

func NewProductController(productRepo repository.ProductRepository, catalogRepo repository.CatalogRepository) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
	}
}

// List returns the catalog with optional search, category and spotlight filters
func (pc *ProductController) List(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	q := repository.ProductQuery{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Spotlight: c.Query("spotlight") == "true",
	}

	products, total, err := pc.productRepo.List(c.Request.Context(), q, page, limit)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetByID returns one product with its stock record preloaded
func (pc *ProductController) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	product, err := pc.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

type productRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required,min=1"`
	OldPrice    int    `json:"old_price"`
	Images      string `json:"images"`
	Category    string `json:"category"`
	IsSpotlight bool   `json:"is_spotlight"`
}

// Create adds a catalog product (admin only)
func (pc *ProductController) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product := &models.Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Images:      req.Images,
		Category:    req.Category,
		IsSpotlight: req.IsSpotlight,
	}
	if err := pc.productRepo.Create(c.Request.Context(), product); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// Update replaces the mutable fields of a product (admin only)
func (pc *ProductController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	product, err := pc.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.OldPrice = req.OldPrice
	product.Images = req.Images
	product.Category = req.Category
	product.IsSpotlight = req.IsSpotlight

	if err := pc.productRepo.Update(c.Request.Context(), product); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete removes a product and its stock record (admin only)
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	if err := pc.productRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ListBanners returns active storefront banners
func (pc *ProductController) ListBanners(c *gin.Context) {
	banners, err := pc.catalogRepo.ListBanners(c.Request.Context(), true)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

type bannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url" binding:"required"`
	Active   bool   `json:"active"`
}

// CreateBanner adds a storefront banner (admin only)
func (pc *ProductController) CreateBanner(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	banner := &models.Banner{
		ID:       uuid.New(),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	}
	if err := pc.catalogRepo.CreateBanner(c.Request.Context(), banner); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// DeleteBanner removes a banner (admin only)
func (pc *ProductController) DeleteBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID format"})
		return
	}

	if err := pc.catalogRepo.DeleteBanner(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}

// ListOffers returns active promotions
func (pc *ProductController) ListOffers(c *gin.Context) {
	offers, err := pc.catalogRepo.ListOffers(c.Request.Context(), true)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

type offerRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Discount    int    `json:"discount" binding:"required,min=1,max=100"`
	Active      bool   `json:"active"`
}

// CreateOffer adds a promotion (admin only)
func (pc *ProductController) CreateOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	offer := &models.Offer{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Discount:    req.Discount,
		Active:      req.Active,
	}
	if err := pc.catalogRepo.CreateOffer(c.Request.Context(), offer); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// DeleteOffer removes a promotion (admin only)
func (pc *ProductController) DeleteOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID format"})
		return
	}

	if err := pc.catalogRepo.DeleteOffer(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
}
