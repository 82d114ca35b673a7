package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MirBabaTravels/booking_svc/internal/catalog"
	"github.com/MirBabaTravels/booking_svc/internal/chatbot"
	"github.com/MirBabaTravels/booking_svc/internal/inquiry"
	"github.com/MirBabaTravels/booking_svc/internal/model"
)

const (
	jsonKeyError = "error"

	errorValueInvalidJSON    = "invalid_json"
	errorValueMissingFields  = "missing_fields"
	errorValueRateLimited    = "rate_limited"
	errorValueUnknownPackage = "unknown_package"
	errorValueSaveFailed     = "save_failed"
	errorValueMissingLookup  = "missing_lookup"

	// PackageSourceDatabase marks a package row read from the database;
	// only these may be referenced from an inquiry.
	PackageSourceDatabase = "database"
	// PackageSourceBuiltin marks a builtin catalog entry served while the
	// database holds no packages.
	PackageSourceBuiltin = "builtin"

	// ChatFallbackAnswer is substituted when no curated FAQ and no builtin
	// rule matches the visitor's message.
	ChatFallbackAnswer = "I'm not sure about that specific detail. But our travel experts know everything!\n\nWould you like to chat with a human agent on WhatsApp?"

	bookingMessageTemplate = "Booking Inquiry for: %s\nTravel Date: %s"

	inquiryNameMaxLength    = 200
	inquiryEmailMaxLength   = 320
	inquiryPhoneMaxLength   = 32
	inquiryMessageMaxLength = 4000

	logEventConfirmationEmail = "confirmation_email_failed"
	logEventListFAQs          = "list_faqs_failed"
	logEventListPackages      = "list_packages_failed"
	logEventLookupPackages    = "lookup_packages_failed"
)

// PublicHandlers serves the endpoints available without authentication: the
// contact form, the package catalog, the booking flow, the guest booking
// lookup and the chat widget backend.
type PublicHandlers struct {
	database                  *gorm.DB
	logger                    *zap.Logger
	inquiries                 *inquiry.Store
	matcher                   *chatbot.Matcher
	emailSender               EmailSender
	rateWindow                time.Duration
	maxRequestsPerIPPerWindow int
	rateCountersByIP          map[string]int
	rateCountersMutex         sync.Mutex
}

// NewPublicHandlers creates the public handler set.
func NewPublicHandlers(database *gorm.DB, logger *zap.Logger, inquiries *inquiry.Store, matcher *chatbot.Matcher, emailSender EmailSender) *PublicHandlers {
	return &PublicHandlers{
		database:                  database,
		logger:                    logger,
		inquiries:                 inquiries,
		matcher:                   matcher,
		emailSender:               emailSender,
		rateWindow:                30 * time.Second,
		maxRequestsPerIPPerWindow: 6,
		rateCountersByIP:          make(map[string]int),
	}
}

type createInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type createBookingRequest struct {
	PackageSlug string `json:"package_slug"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TravelDate  string `json:"travel_date"`
}

type inquiryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	PackageID string `json:"package_id,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type bookingResponse struct {
	inquiryResponse
	Package *packageSummary `json:"package,omitempty"`
}

type packageSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Duration      string `json:"duration"`
	Price         int    `json:"price"`
	Location      string `json:"location"`
	FeaturedImage string `json:"featured_image"`
}

type packageResponse struct {
	model.TourPackage
	Source string `json:"source"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer  string `json:"answer"`
	Matched bool   `json:"matched"`
}

// CreateInquiry accepts a contact form submission. The submitter always sees
// a success response when the record landed somewhere; database outages are
// absorbed by the fallback cache inside the inquiry store.
func (handlers *PublicHandlers) CreateInquiry(context *gin.Context) {
	clientIP := context.ClientIP()
	if handlers.isRateLimited(clientIP) {
		context.JSON(http.StatusTooManyRequests, gin.H{jsonKeyError: errorValueRateLimited})
		return
	}

	var payload createInquiryRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	submission := inquiry.NewInquiry{
		Name:    truncate(strings.TrimSpace(payload.Name), inquiryNameMaxLength),
		Email:   truncate(strings.TrimSpace(payload.Email), inquiryEmailMaxLength),
		Phone:   truncate(strings.TrimSpace(payload.Phone), inquiryPhoneMaxLength),
		Message: truncate(strings.TrimSpace(payload.Message), inquiryMessageMaxLength),
	}
	if submission.Name == "" || submission.Email == "" || submission.Phone == "" || submission.Message == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	record, createErr := handlers.inquiries.Create(context.Request.Context(), submission)
	if createErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}

	handlers.sendConfirmationEmail(context.Request.Context(), record.Email, inquiryEmailSubject, inquiryConfirmationBody(record))
	context.JSON(http.StatusOK, toInquiryResponse(record))
}

// CreateBooking accepts a booking form submission for a package slug. The
// package reference is attached to the inquiry only when the package row
// exists in the database; bookings against builtin catalog entries keep the
// package details in the message text instead.
func (handlers *PublicHandlers) CreateBooking(context *gin.Context) {
	clientIP := context.ClientIP()
	if handlers.isRateLimited(clientIP) {
		context.JSON(http.StatusTooManyRequests, gin.H{jsonKeyError: errorValueRateLimited})
		return
	}

	var payload createBookingRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}

	payload.PackageSlug = strings.TrimSpace(payload.PackageSlug)
	payload.TravelDate = strings.TrimSpace(payload.TravelDate)
	if payload.PackageSlug == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	tourPackage, packageSource, packageFound := handlers.resolvePackageBySlug(context.Request.Context(), payload.PackageSlug)
	if !packageFound {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownPackage})
		return
	}

	submission := inquiry.NewInquiry{
		Name:                truncate(strings.TrimSpace(payload.Name), inquiryNameMaxLength),
		Email:               truncate(strings.TrimSpace(payload.Email), inquiryEmailMaxLength),
		Phone:               truncate(strings.TrimSpace(payload.Phone), inquiryPhoneMaxLength),
		Message:             fmt.Sprintf(bookingMessageTemplate, tourPackage.Title, payload.TravelDate),
		PackageID:           tourPackage.ID,
		PackageFromDatabase: packageSource == PackageSourceDatabase,
	}
	if submission.Name == "" || submission.Email == "" || submission.Phone == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	record, createErr := handlers.inquiries.Create(context.Request.Context(), submission)
	if createErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: errorValueSaveFailed})
		return
	}

	subject := fmt.Sprintf(bookingEmailSubjectTemplate, tourPackage.Title)
	handlers.sendConfirmationEmail(context.Request.Context(), record.Email, subject, bookingConfirmationBody(record, tourPackage, payload.TravelDate))

	response := bookingResponse{inquiryResponse: toInquiryResponse(record)}
	summary := toPackageSummary(tourPackage)
	response.Package = &summary
	context.JSON(http.StatusOK, response)
}

// ListBookings looks up a guest's bookings by email or phone. Results come
// from the merged view of the database and the fallback cache, so a booking
// submitted during an outage is still visible on the device that took it.
func (handlers *PublicHandlers) ListBookings(context *gin.Context) {
	lookupFilter := inquiry.Filter{
		Email: strings.TrimSpace(context.Query("email")),
		Phone: strings.TrimSpace(context.Query("phone")),
	}
	if lookupFilter.IsEmpty() {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingLookup})
		return
	}

	records, _ := handlers.inquiries.List(context.Request.Context(), lookupFilter)
	summaries := handlers.packageSummariesFor(context.Request.Context(), records)

	bookings := make([]bookingResponse, 0, len(records))
	for _, record := range records {
		response := bookingResponse{inquiryResponse: toInquiryResponse(record)}
		if summary, found := summaries[record.PackageID]; found {
			responseSummary := summary
			response.Package = &responseSummary
		}
		bookings = append(bookings, response)
	}

	context.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Chat answers a chat widget message. Curated FAQ records are fetched fresh
// for each message so administrator edits apply immediately; a database
// failure degrades to the builtin knowledge base alone.
func (handlers *PublicHandlers) Chat(context *gin.Context) {
	var payload chatRequest
	if bindErr := context.BindJSON(&payload); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueInvalidJSON})
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: errorValueMissingFields})
		return
	}

	var curatedRecords []model.FAQ
	if queryErr := handlers.database.WithContext(context.Request.Context()).
		Order("category ASC").
		Find(&curatedRecords).Error; queryErr != nil {
		handlers.logger.Warn(logEventListFAQs, zap.Error(queryErr))
		curatedRecords = nil
	}

	answer, matched := handlers.matcher.Match(payload.Message, curatedRecords)
	if !matched {
		answer = ChatFallbackAnswer
	}

	context.JSON(http.StatusOK, chatResponse{Answer: answer, Matched: matched})
}

// ListPackages returns the package catalog. When the database holds no
// package rows the builtin catalog is served instead, flagged with its
// non-database provenance.
func (handlers *PublicHandlers) ListPackages(context *gin.Context) {
	var packages []model.TourPackage
	queryErr := handlers.database.WithContext(context.Request.Context()).
		Order("created_at DESC").
		Find(&packages).Error
	if queryErr != nil {
		handlers.logger.Warn(logEventListPackages, zap.Error(queryErr))
		packages = nil
	}

	source := PackageSourceDatabase
	if len(packages) == 0 {
		packages = catalog.Packages()
		source = PackageSourceBuiltin
	}

	responses := make([]packageResponse, 0, len(packages))
	for _, tourPackage := range packages {
		responses = append(responses, packageResponse{TourPackage: tourPackage, Source: source})
	}
	context.JSON(http.StatusOK, gin.H{"packages": responses})
}

// GetPackageBySlug returns a single package, falling back to the builtin
// catalog when the slug is not in the database.
func (handlers *PublicHandlers) GetPackageBySlug(context *gin.Context) {
	slug := strings.TrimSpace(context.Param("slug"))

	tourPackage, source, found := handlers.resolvePackageBySlug(context.Request.Context(), slug)
	if !found {
		context.JSON(http.StatusNotFound, gin.H{jsonKeyError: errorValueUnknownPackage})
		return
	}

	context.JSON(http.StatusOK, packageResponse{TourPackage: tourPackage, Source: source})
}

func (handlers *PublicHandlers) resolvePackageBySlug(ctx context.Context, slug string) (model.TourPackage, string, bool) {
	if slug == "" {
		return model.TourPackage{}, "", false
	}

	var tourPackage model.TourPackage
	lookupErr := handlers.database.WithContext(ctx).First(&tourPackage, "slug = ?", slug).Error
	if lookupErr == nil {
		return tourPackage, PackageSourceDatabase, true
	}

	builtinPackage, builtinFound := catalog.PackageBySlug(slug)
	if !builtinFound {
		return model.TourPackage{}, "", false
	}
	return builtinPackage, PackageSourceBuiltin, true
}

func (handlers *PublicHandlers) packageSummariesFor(ctx context.Context, records []model.Inquiry) map[string]packageSummary {
	identifiers := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.PackageID == "" {
			continue
		}
		if _, duplicate := seen[record.PackageID]; duplicate {
			continue
		}
		seen[record.PackageID] = struct{}{}
		identifiers = append(identifiers, record.PackageID)
	}
	if len(identifiers) == 0 {
		return nil
	}

	var packages []model.TourPackage
	if queryErr := handlers.database.WithContext(ctx).Find(&packages, "id IN ?", identifiers).Error; queryErr != nil {
		handlers.logger.Warn(logEventLookupPackages, zap.Error(queryErr))
		return nil
	}

	summaries := make(map[string]packageSummary, len(packages))
	for _, tourPackage := range packages {
		summaries[tourPackage.ID] = toPackageSummary(tourPackage)
	}
	return summaries
}

func (handlers *PublicHandlers) sendConfirmationEmail(ctx context.Context, recipient string, subject string, body string) {
	if handlers.emailSender == nil {
		return
	}
	if sendErr := handlers.emailSender.SendEmail(ctx, recipient, subject, body); sendErr != nil {
		handlers.logger.Warn(logEventConfirmationEmail, zap.Error(sendErr))
	}
}

func (handlers *PublicHandlers) isRateLimited(ip string) bool {
	nowBucket := time.Now().Unix() / int64(handlers.rateWindow.Seconds())
	key := fmt.Sprintf("%s:%d", ip, nowBucket)

	handlers.rateCountersMutex.Lock()
	defer handlers.rateCountersMutex.Unlock()

	handlers.rateCountersByIP[key]++
	return handlers.rateCountersByIP[key] > handlers.maxRequestsPerIPPerWindow
}

func toInquiryResponse(record model.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Message:   record.Message,
		PackageID: record.PackageID,
		Status:    record.Status,
		CreatedAt: record.CreatedAt.Unix(),
	}
}

func toPackageSummary(tourPackage model.TourPackage) packageSummary {
	return packageSummary{
		ID:            tourPackage.ID,
		Title:         tourPackage.Title,
		Slug:          tourPackage.Slug,
		Duration:      tourPackage.Duration,
		Price:         tourPackage.Price,
		Location:      tourPackage.Location,
		FeaturedImage: tourPackage.FeaturedImage,
	}
}

func truncate(input string, max int) string {
	if len(input) <= max {
		return input
	}
	return input[:max]
}
