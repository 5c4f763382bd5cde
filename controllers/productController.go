package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	msgProductAdded   = "Product added successfully"
	msgProductUpdated = "Product updated successfully"
	msgProductDeleted = "Product deleted successfully"

	// Longest a client may block on ?wait=true for an image upload.
	maxImageWait = 15 * time.Second
)

type ProductController struct {
	catalog *services.Catalog
	images  *services.Images
}

func NewProductController(catalog *services.Catalog, images *services.Images) *ProductController {
	return &ProductController{catalog: catalog, images: images}
}

func parseSpecification(raw string) ([]models.Specification, error) {
	spec := []models.Specification{}
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, fmt.Errorf("%w: specification must be a JSON array of {name, value}", models.ErrValidation)
	}
	return spec, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price must be a number", models.ErrValidation)
	}
	return price, nil
}

func (p *ProductController) AddProduct(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}

	in := services.ProductInput{
		Name:        ctx.PostForm("productName"),
		Description: ctx.PostForm("description"),
		Type:        models.ProductType(ctx.PostForm("type")),
		Status:      models.StockStatus(ctx.PostForm("status")),
	}
	price, err := parsePrice(ctx.PostForm("price"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	in.Price = price
	if raw, ok := ctx.GetPostForm("specification"); ok && raw != "" {
		if in.Specification, err = parseSpecification(raw); err != nil {
			respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
			return
		}
	}

	upload, err := readImageUpload(ctx, "image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "invalid image", err)
		return
	}

	product, att, err := p.catalog.AddProduct(ctx.Request.Context(), principal.ID, in, upload)
	if err != nil {
		handleServiceError(ctx, err, "unable to add product")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgProductAdded,
		"product": product,
		"image":   attachmentView(att),
	})
}

// filledPostForm reports a form value only when it is non-blank. The product
// form posts every field, so an empty one means "leave unchanged".
func filledPostForm(ctx *gin.Context, key string) (string, bool) {
	v, ok := ctx.GetPostForm(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func productPatchFromForm(ctx *gin.Context) (services.ProductPatch, error) {
	var patch services.ProductPatch
	if v, ok := filledPostForm(ctx, "productName"); ok {
		patch.Name = &v
	}
	if v, ok := filledPostForm(ctx, "description"); ok {
		patch.Description = &v
	}
	if v, ok := filledPostForm(ctx, "type"); ok {
		t := models.ProductType(v)
		patch.Type = &t
	}
	if v, ok := filledPostForm(ctx, "status"); ok {
		s := models.StockStatus(v)
		patch.Status = &s
	}
	if v, ok := filledPostForm(ctx, "price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	// An explicit "[]" clears the specification.
	if v, ok := filledPostForm(ctx, "specification"); ok {
		spec, err := parseSpecification(v)
		if err != nil {
			return patch, err
		}
		patch.Specification = spec
	}
	return patch, nil
}

// UpdateProduct applies only the form fields that were sent.
func (p *ProductController) UpdateProduct(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}

	productID, ok := parseID(ctx.PostForm("productId"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid productId")
		return
	}

	patch, err := productPatchFromForm(ctx)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	upload, err := readImageUpload(ctx, "image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "invalid image", err)
		return
	}

	product, att, err := p.catalog.UpdateProduct(ctx.Request.Context(), principal.ID, productID, patch, upload)
	if err != nil {
		handleServiceError(ctx, err, "unable to update product")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgProductUpdated,
		"product": product,
		"image":   attachmentView(att),
	})
}

func (p *ProductController) DeleteProduct(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := parseID(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}

	if err := p.catalog.DeleteProduct(ctx.Request.Context(), principal.ID, productID); err != nil {
		handleServiceError(ctx, err, "unable to delete product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProductDeleted})
}

func (p *ProductController) GetProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}

	product, err := p.catalog.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		handleServiceError(ctx, err, "Product not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func (p *ProductController) Search(ctx *gin.Context) {
	products, err := p.catalog.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		handleServiceError(ctx, err, "unable to search products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (p *ProductController) ListByType(ctx *gin.Context) {
	products, err := p.catalog.ListByType(ctx.Request.Context(), models.ProductType(ctx.Param("type")))
	if err != nil {
		handleServiceError(ctx, err, "unable to list products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (p *ProductController) MyProducts(ctx *gin.Context) {
	principal, ok := currentUser(ctx)
	if !ok {
		return
	}
	products, err := p.catalog.ListBySeller(ctx.Request.Context(), principal.ID)
	if err != nil {
		handleServiceError(ctx, err, "unable to list products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

// ImageStatus reports whether an image has finished uploading. With
// ?wait=true it blocks until the upload lands or a short deadline passes.
func (p *ProductController) ImageStatus(ctx *gin.Context) {
	imageID, ok := parseID(ctx.Param("id"))
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}

	var (
		image *models.Image
		err   error
	)
	if ctx.Query("wait") == "true" {
		waitCtx, cancel := context.WithTimeout(ctx.Request.Context(), maxImageWait)
		defer cancel()
		image, err = p.images.Wait(waitCtx, imageID)
		if errors.Is(err, context.DeadlineExceeded) && image != nil {
			err = nil
		}
	} else {
		image, err = p.images.Status(ctx.Request.Context(), imageID)
	}
	if err != nil {
		handleServiceError(ctx, err, "Image not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"image": imageView(image)})
}
