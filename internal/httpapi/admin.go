package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MirBabaTravels/booking_svc/internal/catalog"
	"github.com/MirBabaTravels/booking_svc/internal/inquiry"
	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

const (
	errorValueInvalidStatus   = "invalid_status"
	errorValueUnknownRecord   = "unknown_record"
	errorValueQueryFailed     = "query_failed"
	errorValueDeleteFailed    = "delete_failed"
	errorValueUpdateFailed    = "update_failed"
	errorValueSlugExists      = "slug_exists"
	errorValueNothingToUpdate = "nothing_to_update"

	logEventSeedPackages = "seed_packages"
	logFieldPackageSlug  = "package_slug"

	routeParameterID = "id"
)

var allowedInquiryStatuses = map[string]struct{}{
	model.InquiryStatusPending:   {},
	model.InquiryStatusRead:      {},
	model.InquiryStatusBooked:    {},
	model.InquiryStatusContacted: {},
	model.InquiryStatusClosed:    {},
}

// AdminHandlers serves the staff back office: inquiries across both storage
// locations, package management and the chatbot FAQ knowledge base.
type AdminHandlers struct {
	database  *gorm.DB
	logger    *zap.Logger
	inquiries *inquiry.Store
}

// NewAdminHandlers creates the admin handler set.
func NewAdminHandlers(database *gorm.DB, logger *zap.Logger, inquiries *inquiry.Store) *AdminHandlers {
	return &AdminHandlers{
		database:  database,
		logger:    logger,
		inquiries: inquiries,
	}
}

type updateInquiryStatusRequest struct {
	Status string `json:"status"`
}

type createFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type updateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Category *string `json:"category"`
}

type createPackageRequest struct {
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Duration      string               `json:"duration"`
	Price         int                  `json:"price"`
	Location      string               `json:"location"`
	Description   string               `json:"description"`
	Inclusions    []string             `json:"inclusions"`
	Exclusions    []string             `json:"exclusions"`
	Itinerary     []model.ItineraryDay `json:"itinerary"`
	FeaturedImage string               `json:"featured_image"`
	IsPopular     bool                 `json:"is_popular"`
}

type updatePackageRequest struct {
	Title         *string               `json:"title"`
	Slug          *string               `json:"slug"`
	Duration      *string               `json:"duration"`
	Price         *int                  `json:"price"`
	Location      *string               `json:"location"`
	Description   *string               `json:"description"`
	Inclusions    *[]string             `json:"inclusions"`
	Exclusions    *[]string             `json:"exclusions"`
	Itinerary     *[]model.ItineraryDay `json:"itinerary"`
	FeaturedImage *string               `json:"featured_image"`
	IsPopular     *bool                 `json:"is_popular"`
}

type seedPackagesResponse struct {
	Inserted int      `json:"inserted"`
	Skipped  []string `json:"skipped"`
}

// ListInquiries returns the merged inquiry list across the database and the
// fallback cache, newest first.
func (handlers *AdminHandlers) ListInquiries(context *gin.Context) {
	records, _ := handlers.inquiries.List(context.Request.Context(), inquiry.Filter{})

	responses := make([]inquiryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toInquiryResponse(record))
	}
	context.JSON(http.StatusOK, gin.H{"inquiries": responses})
}

// UpdateInquiryStatus sets an inquiry's status. The change is applied against
// both storage locations because the caller cannot know which one holds the
// identifier.
func (handlers *AdminHandlers) UpdateInquiryStatus(context *gin.Context) {
	recordID := strings.TrimSpace(context.Param(routeParameterID))

	var payload updateInquiryStatusRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	requestedStatus := strings.TrimSpace(payload.Status)
	if _, allowed := allowedInquiryStatuses[requestedStatus]; !allowed {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidStatus})
		return
	}

	if updateErr := handlers.inquiries.UpdateStatus(context.Request.Context(), recordID, requestedStatus); updateErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueUpdateFailed})
		return
	}
	context.JSON(http.StatusOK, gin.H{"id": recordID, "status": requestedStatus})
}

// DeleteInquiry removes an inquiry from both storage locations.
func (handlers *AdminHandlers) DeleteInquiry(context *gin.Context) {
	recordID := strings.TrimSpace(context.Param(routeParameterID))

	if deleteErr := handlers.inquiries.Delete(context.Request.Context(), recordID); deleteErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueDeleteFailed})
		return
	}
	context.Status(http.StatusNoContent)
}

// ListPackages returns the database-held packages only; the builtin catalog
// is not editable and is therefore not shown in the back office list.
func (handlers *AdminHandlers) ListPackages(context *gin.Context) {
	var packages []model.TourPackage
	if queryErr := handlers.database.WithContext(context.Request.Context()).
		Order("created_at DESC").
		Find(&packages).Error; queryErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueQueryFailed})
		return
	}
	context.JSON(http.StatusOK, gin.H{"packages": packages})
}

// CreatePackage inserts a new tour package.
func (handlers *AdminHandlers) CreatePackage(context *gin.Context) {
	var payload createPackageRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	payload.Title = strings.TrimSpace(payload.Title)
	payload.Slug = strings.TrimSpace(payload.Slug)
	if payload.Title == "" || payload.Slug == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	var existingCount int64
	if countErr := handlers.database.WithContext(context.Request.Context()).
		Model(&model.TourPackage{}).
		Where("slug = ?", payload.Slug).
		Count(&existingCount).Error; countErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueQueryFailed})
		return
	}
	if existingCount > 0 {
		context.JSON(http.StatusConflict, gin.H{jsonKeyError: errorValueSlugExists})
		return
	}

	tourPackage := model.TourPackage{
		ID:            storage.NewID(),
		Title:         payload.Title,
		Slug:          payload.Slug,
		Duration:      payload.Duration,
		Price:         payload.Price,
		Location:      payload.Location,
		Description:   payload.Description,
		Inclusions:    payload.Inclusions,
		Exclusions:    payload.Exclusions,
		Itinerary:     payload.Itinerary,
		FeaturedImage: payload.FeaturedImage,
		IsPopular:     payload.IsPopular,
	}
	if createErr := handlers.database.WithContext(context.Request.Context()).Create(&tourPackage).Error; createErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}
	context.JSON(http.StatusOK, tourPackage)
}

// UpdatePackage applies a partial update to a tour package.
func (handlers *AdminHandlers) UpdatePackage(context *gin.Context) {
	packageID := strings.TrimSpace(context.Param(routeParameterID))

	var tourPackage model.TourPackage
	if lookupErr := handlers.database.WithContext(context.Request.Context()).
		First(&tourPackage, "id = ?", packageID).Error; lookupErr != nil {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownRecord})
		return
	}

	var payload updatePackageRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	changed := false
	if payload.Title != nil {
		tourPackage.Title = strings.TrimSpace(*payload.Title)
		changed = true
	}
	if payload.Slug != nil {
		tourPackage.Slug = strings.TrimSpace(*payload.Slug)
		changed = true
	}
	if payload.Duration != nil {
		tourPackage.Duration = *payload.Duration
		changed = true
	}
	if payload.Price != nil {
		tourPackage.Price = *payload.Price
		changed = true
	}
	if payload.Location != nil {
		tourPackage.Location = *payload.Location
		changed = true
	}
	if payload.Description != nil {
		tourPackage.Description = *payload.Description
		changed = true
	}
	if payload.Inclusions != nil {
		tourPackage.Inclusions = *payload.Inclusions
		changed = true
	}
	if payload.Exclusions != nil {
		tourPackage.Exclusions = *payload.Exclusions
		changed = true
	}
	if payload.Itinerary != nil {
		tourPackage.Itinerary = *payload.Itinerary
		changed = true
	}
	if payload.FeaturedImage != nil {
		tourPackage.FeaturedImage = *payload.FeaturedImage
		changed = true
	}
	if payload.IsPopular != nil {
		tourPackage.IsPopular = *payload.IsPopular
		changed = true
	}
	if !changed {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueNothingToUpdate})
		return
	}

	if saveErr := handlers.database.WithContext(context.Request.Context()).Save(&tourPackage).Error; saveErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}
	context.JSON(http.StatusOK, tourPackage)
}

// DeletePackage removes a tour package.
func (handlers *AdminHandlers) DeletePackage(context *gin.Context) {
	packageID := strings.TrimSpace(context.Param(routeParameterID))

	result := handlers.database.WithContext(context.Request.Context()).
		Delete(&model.TourPackage{}, "id = ?", packageID)
	if result.Error != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueDeleteFailed})
		return
	}
	if result.RowsAffected == 0 {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownRecord})
		return
	}
	context.Status(http.StatusNoContent)
}

// SeedPackages inserts the builtin catalog entries that are not yet present,
// matching on slug. Each inserted row gets a fresh database identifier so
// builtin identifiers never leak into the database.
func (handlers *AdminHandlers) SeedPackages(context *gin.Context) {
	insertedCount := 0
	var skippedSlugs []string

	for _, builtinPackage := range catalog.Packages() {
		var existingCount int64
		if countErr := handlers.database.WithContext(context.Request.Context()).
			Model(&model.TourPackage{}).
			Where("slug = ?", builtinPackage.Slug).
			Count(&existingCount).Error; countErr != nil {
			context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueQueryFailed})
			return
		}
		if existingCount > 0 {
			skippedSlugs = append(skippedSlugs, builtinPackage.Slug)
			continue
		}

		seededPackage := builtinPackage
		seededPackage.ID = storage.NewID()
		if createErr := handlers.database.WithContext(context.Request.Context()).Create(&seededPackage).Error; createErr != nil {
			context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
			return
		}
		handlers.logger.Info(logEventSeedPackages, zap.String(logFieldPackageSlug, seededPackage.Slug))
		insertedCount++
	}

	context.JSON(http.StatusOK, seedPackagesResponse{Inserted: insertedCount, Skipped: skippedSlugs})
}

// ListFAQs returns the curated chatbot records in category order, the same
// order the matcher consumes them in.
func (handlers *AdminHandlers) ListFAQs(context *gin.Context) {
	var records []model.FAQ
	if queryErr := handlers.database.WithContext(context.Request.Context()).
		Order("category ASC").
		Find(&records).Error; queryErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueQueryFailed})
		return
	}
	context.JSON(http.StatusOK, gin.H{"faqs": records})
}

// CreateFAQ inserts a curated chatbot record.
func (handlers *AdminHandlers) CreateFAQ(context *gin.Context) {
	var payload createFAQRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	payload.Question = strings.TrimSpace(payload.Question)
	payload.Answer = strings.TrimSpace(payload.Answer)
	if payload.Question == "" || payload.Answer == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	record := model.FAQ{
		ID:       storage.NewID(),
		Question: payload.Question,
		Answer:   payload.Answer,
		Category: strings.TrimSpace(payload.Category),
	}
	if createErr := handlers.database.WithContext(context.Request.Context()).Create(&record).Error; createErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}
	context.JSON(http.StatusOK, record)
}

// UpdateFAQ applies a partial update to a curated chatbot record.
func (handlers *AdminHandlers) UpdateFAQ(context *gin.Context) {
	recordID := strings.TrimSpace(context.Param(routeParameterID))

	var record model.FAQ
	if lookupErr := handlers.database.WithContext(context.Request.Context()).
		First(&record, "id = ?", recordID).Error; lookupErr != nil {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownRecord})
		return
	}

	var payload updateFAQRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	changed := false
	if payload.Question != nil {
		record.Question = strings.TrimSpace(*payload.Question)
		changed = true
	}
	if payload.Answer != nil {
		record.Answer = strings.TrimSpace(*payload.Answer)
		changed = true
	}
	if payload.Category != nil {
		record.Category = strings.TrimSpace(*payload.Category)
		changed = true
	}
	if !changed {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueNothingToUpdate})
		return
	}

	if saveErr := handlers.database.WithContext(context.Request.Context()).Save(&record).Error; saveErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}
	context.JSON(http.StatusOK, record)
}

// DeleteFAQ removes a curated chatbot record.
func (handlers *AdminHandlers) DeleteFAQ(context *gin.Context) {
	recordID := strings.TrimSpace(context.Param(routeParameterID))

	result := handlers.database.WithContext(context.Request.Context()).
		Delete(&model.FAQ{}, "id = ?", recordID)
	if result.Error != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueDeleteFailed})
		return
	}
	if result.RowsAffected == 0 {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownRecord})
		return
	}
	context.Status(http.StatusNoContent)
}
