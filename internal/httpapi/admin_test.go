package httpapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MirBabaTravels/booking_svc/internal/inquiry"
	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

func buildAdminHarness(testingT *testing.T) (apiHarness, map[string]string) {
	testingT.Helper()

	api := buildAPIHarness(testingT, nil)
	insertAdmin(testingT, api.database, testAdminEmail, testAdminPassword)
	token := loginAdmin(testingT, api)
	return api, bearerHeaders(token)
}

func TestAdminListsInquiriesFromBothLocations(t *testing.T) {
	api, headers := buildAdminHarness(t)

	remoteRecord := model.Inquiry{ID: storage.NewID(), Name: "A", Email: "a@example.com", Phone: "111", Message: "m", Status: model.InquiryStatusPending, CreatedAt: time.Unix(100, 0)}
	require.NoError(t, api.database.Create(&remoteRecord).Error)
	localRecord := model.Inquiry{ID: "1700000000200", Name: "B", Email: "b@example.com", Phone: "222", Message: "m", Status: model.InquiryStatusPending, CreatedAt: time.Unix(200, 0)}
	require.NoError(t, api.local.Insert(context.Background(), &localRecord))

	response := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/inquiries", nil, headers)
	require.Equal(t, http.StatusOK, response.Code)

	body := decodeJSONBody(t, response)
	inquiries, _ := body["inquiries"].([]any)
	require.Len(t, inquiries, 2)

	newest, _ := inquiries[0].(map[string]any)
	require.Equal(t, "1700000000200", newest["id"])
}

func TestAdminUpdatesInquiryStatusInEitherLocation(t *testing.T) {
	api, headers := buildAdminHarness(t)

	remoteRecord := model.Inquiry{ID: storage.NewID(), Name: "A", Email: "a@example.com", Phone: "111", Message: "m", Status: model.InquiryStatusPending}
	require.NoError(t, api.database.Create(&remoteRecord).Error)
	localRecord := model.Inquiry{ID: "1700000000200", Name: "B", Email: "b@example.com", Phone: "222", Message: "m", Status: model.InquiryStatusPending}
	require.NoError(t, api.local.Insert(context.Background(), &localRecord))

	remoteUpdate := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/inquiries/"+remoteRecord.ID, map[string]any{
		"status": model.InquiryStatusBooked,
	}, headers)
	require.Equal(t, http.StatusOK, remoteUpdate.Code)

	var reloaded model.Inquiry
	require.NoError(t, api.database.First(&reloaded, "id = ?", remoteRecord.ID).Error)
	require.Equal(t, model.InquiryStatusBooked, reloaded.Status)

	localUpdate := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/inquiries/1700000000200", map[string]any{
		"status": model.InquiryStatusContacted,
	}, headers)
	require.Equal(t, http.StatusOK, localUpdate.Code)

	cached, cacheErr := api.local.List(context.Background(), inquiry.Filter{})
	require.NoError(t, cacheErr)
	require.Equal(t, model.InquiryStatusContacted, cached[0].Status)

	invalidStatus := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/inquiries/"+remoteRecord.ID, map[string]any{
		"status": "archived",
	}, headers)
	require.Equal(t, http.StatusBadRequest, invalidStatus.Code)
}

func TestAdminDeletesInquiryFromBothLocations(t *testing.T) {
	api, headers := buildAdminHarness(t)

	remoteRecord := model.Inquiry{ID: storage.NewID(), Name: "A", Email: "a@example.com", Phone: "111", Message: "m", Status: model.InquiryStatusPending}
	require.NoError(t, api.database.Create(&remoteRecord).Error)
	localRecord := model.Inquiry{ID: "1700000000200", Name: "B", Email: "b@example.com", Phone: "222", Message: "m", Status: model.InquiryStatusPending}
	require.NoError(t, api.local.Insert(context.Background(), &localRecord))

	remoteDelete := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/inquiries/"+remoteRecord.ID, nil, headers)
	require.Equal(t, http.StatusNoContent, remoteDelete.Code)

	localDelete := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/inquiries/1700000000200", nil, headers)
	require.Equal(t, http.StatusNoContent, localDelete.Code)

	repeatDelete := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/inquiries/1700000000200", nil, headers)
	require.Equal(t, http.StatusNoContent, repeatDelete.Code)

	merged, listErr := api.store.List(context.Background(), inquiry.Filter{})
	require.NoError(t, listErr)
	require.Empty(t, merged)
}

func TestAdminPackageLifecycle(t *testing.T) {
	api, headers := buildAdminHarness(t)

	created := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/packages", map[string]any{
		"title":    "Srinagar Special",
		"slug":     "srinagar-special",
		"duration": "5D/4N",
		"price":    15999,
		"location": "Srinagar",
		"itinerary": []map[string]any{
			{"day": 1, "title": "Arrival", "desc": "Airport pickup"},
		},
	}, headers)
	require.Equal(t, http.StatusOK, created.Code)
	createdBody := decodeJSONBody(t, created)
	packageID, _ := createdBody["id"].(string)
	require.NotEmpty(t, packageID)

	duplicate := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/packages", map[string]any{
		"title": "Srinagar Special Again",
		"slug":  "srinagar-special",
	}, headers)
	require.Equal(t, http.StatusConflict, duplicate.Code)

	updated := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/packages/"+packageID, map[string]any{
		"price":      13999,
		"is_popular": true,
	}, headers)
	require.Equal(t, http.StatusOK, updated.Code)

	var reloaded model.TourPackage
	require.NoError(t, api.database.First(&reloaded, "id = ?", packageID).Error)
	require.Equal(t, 13999, reloaded.Price)
	require.True(t, reloaded.IsPopular)
	require.Equal(t, "Srinagar Special", reloaded.Title)

	emptyUpdate := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/packages/"+packageID, map[string]any{}, headers)
	require.Equal(t, http.StatusBadRequest, emptyUpdate.Code)

	listed := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/packages", nil, headers)
	require.Equal(t, http.StatusOK, listed.Code)
	listedBody := decodeJSONBody(t, listed)
	packages, _ := listedBody["packages"].([]any)
	require.Len(t, packages, 1)

	deleted := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/packages/"+packageID, nil, headers)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	deletedAgain := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/packages/"+packageID, nil, headers)
	require.Equal(t, http.StatusNotFound, deletedAgain.Code)
}

func TestAdminSeedsBuiltinCatalog(t *testing.T) {
	api, headers := buildAdminHarness(t)
	insertPackage(t, api.database, "Existing Delight", "kashmir-delight")

	seeded := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/packages/seed", nil, headers)
	require.Equal(t, http.StatusOK, seeded.Code)

	body := decodeJSONBody(t, seeded)
	require.Equal(t, float64(5), body["inserted"])
	skipped, _ := body["skipped"].([]any)
	require.Len(t, skipped, 1)
	require.Equal(t, "kashmir-delight", skipped[0])

	var persisted []model.TourPackage
	require.NoError(t, api.database.Find(&persisted).Error)
	require.Len(t, persisted, 6)
	for _, tourPackage := range persisted {
		require.Len(t, tourPackage.ID, 36)
	}
}

func TestAdminFAQLifecycle(t *testing.T) {
	api, headers := buildAdminHarness(t)

	created := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/faqs", map[string]any{
		"question": "best time to visit",
		"answer":   "Spring and autumn.",
		"category": "seasons",
	}, headers)
	require.Equal(t, http.StatusOK, created.Code)
	createdBody := decodeJSONBody(t, created)
	recordID, _ := createdBody["id"].(string)
	require.NotEmpty(t, recordID)

	missingFields := performJSONRequest(t, api.router, http.MethodPost, "/api/admin/faqs", map[string]any{
		"question": " ",
		"answer":   "",
	}, headers)
	require.Equal(t, http.StatusBadRequest, missingFields.Code)

	updated := performJSONRequest(t, api.router, http.MethodPatch, "/api/admin/faqs/"+recordID, map[string]any{
		"answer": "Spring, autumn and the Tulip Festival.",
	}, headers)
	require.Equal(t, http.StatusOK, updated.Code)

	listed := performJSONRequest(t, api.router, http.MethodGet, "/api/admin/faqs", nil, headers)
	require.Equal(t, http.StatusOK, listed.Code)
	listedBody := decodeJSONBody(t, listed)
	records, _ := listedBody["faqs"].([]any)
	require.Len(t, records, 1)
	record, _ := records[0].(map[string]any)
	require.Equal(t, "Spring, autumn and the Tulip Festival.", record["answer"])

	chatResponse := performJSONRequest(t, api.router, http.MethodPost, "/api/chat", map[string]any{
		"message": "what is the best time to visit?",
	}, nil)
	require.Equal(t, http.StatusOK, chatResponse.Code)
	chatBody := decodeJSONBody(t, chatResponse)
	require.Equal(t, "Spring, autumn and the Tulip Festival.", chatBody["answer"])

	deleted := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/faqs/"+recordID, nil, headers)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	deletedAgain := performJSONRequest(t, api.router, http.MethodDelete, "/api/admin/faqs/"+recordID, nil, headers)
	require.Equal(t, http.StatusNotFound, deletedAgain.Code)
}
