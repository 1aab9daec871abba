package listing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"material_market_backend/internal/common"
	"material_market_backend/internal/filestorage"
	"material_market_backend/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context) ([]Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockListingRepository) Replace(ctx context.Context, listing *Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

// MockSearchIndex is a mock type for listing.SearchIndex
type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) Index(ctx context.Context, l Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockSearchIndex) SearchIDs(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// recordingImageStore keeps the last saved object in memory.
type recordingImageStore struct {
	objectName  string
	contentType string
	data        []byte
	err         error
}

func (s *recordingImageStore) Name() string { return "recording" }

func (s *recordingImageStore) Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	s.objectName, s.contentType, s.data = objectName, contentType, data
	return "https://cdn.example.com/" + objectName, nil
}

type ListingServiceTestSuite struct {
	service    *ServiceImplementation
	mockRepo   *MockListingRepository
	mockIndex  *MockSearchIndex
	imageStore *recordingImageStore
	metrics    *metrics.Metrics
}

func setupListingServiceTestSuite(t *testing.T, withIndex bool) *ListingServiceTestSuite {
	ts := &ListingServiceTestSuite{
		mockRepo:   new(MockListingRepository),
		imageStore: &recordingImageStore{},
		metrics:    metrics.NewNop(),
	}
	var index SearchIndex
	if withIndex {
		ts.mockIndex = new(MockSearchIndex)
		index = ts.mockIndex
	}
	ts.service = NewService(ts.mockRepo, index, ts.imageStore, ts.metrics, zap.NewNop())
	return ts
}

func floatPtr(v float64) *float64 { return &v }

func validRequest() CreateListingRequest {
	return CreateListingRequest{
		Title:        "Beton Bloklar M200",
		Category:     "concrete",
		Quantity:     floatPtr(500),
		Unit:         "ədəd",
		PricePerUnit: floatPtr(2.5),
		Location:     "Ağdam",
	}
}

func newUploadHeader(t *testing.T, filename, content, contentType string) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestService_CreateListing_AppliesDefaults(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()

	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*listing.Listing")).
		Run(func(args mock.Arguments) {
			l := args.Get(1).(*Listing)
			l.ID = "generated"
			l.CreatedAt = time.Now()
		}).Return(nil)

	created, err := ts.service.CreateListing(ctx, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "generated", created.ID)
	assert.Equal(t, DefaultSellerName, created.Seller.Name)
	assert.Equal(t, DefaultSellerCompany, created.Seller.Company)
	assert.Equal(t, DefaultSellerPhone, created.Seller.Phone)
	assert.Equal(t, "/assets/materials/concrete-blocks.jpg", created.Image)
	assert.Equal(t, 500.0, created.Quantity)
	assert.Equal(t, 2.5, created.PricePerUnit)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.ListingsCreatedTotal))
	ts.mockRepo.AssertExpectations(t)
}

func TestService_CreateListing_KeepsProvidedSellerAndImage(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	req := validRequest()
	req.Category = "Insulation Foam"
	req.Image = "https://cdn.example.com/foam.jpg"
	req.Seller = SellerInput{Name: "Rəşad", Company: "İzoTech", Phone: "+994 55 000 00 00"}

	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil)

	created, err := ts.service.CreateListing(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "insulation-foam", created.Category)
	assert.Equal(t, "https://cdn.example.com/foam.jpg", created.Image)
	assert.Equal(t, "Rəşad", created.Seller.Name)
	assert.Equal(t, "İzoTech", created.Seller.Company)
}

func TestService_CreateListing_RepositoryError(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	ts.mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	created, err := ts.service.CreateListing(ctx, validRequest())

	assert.Nil(t, created)
	assert.EqualError(t, err, "db down")
	assert.Equal(t, 0.0, testutil.ToFloat64(ts.metrics.ListingsCreatedTotal))
}

func TestService_CreateListing_IndexFailureIsNotFatal(t *testing.T) {
	ts := setupListingServiceTestSuite(t, true)
	ctx := context.Background()
	ts.mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	ts.mockIndex.On("Index", ctx, mock.AnythingOfType("listing.Listing")).Return(errors.New("es unavailable"))

	created, err := ts.service.CreateListing(ctx, validRequest())

	require.NoError(t, err)
	assert.NotNil(t, created)
	ts.mockIndex.AssertExpectations(t)
}

func TestService_GetListingByID_NotFound(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	ts.mockRepo.On("FindByID", ctx, "missing").Return(nil, common.ErrNotFound)

	l, err := ts.service.GetListingByID(ctx, "missing")

	assert.Nil(t, l)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestService_SearchListings_SubstringFilter(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	ts.mockRepo.On("FindAll", ctx).Return(DemoListings(), nil)

	results, err := ts.service.SearchListings(ctx, SearchQuery{Q: "sement"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "4", results[0].ID)
}

func TestService_SearchListings_UsesIndexInStoreOrder(t *testing.T) {
	ts := setupListingServiceTestSuite(t, true)
	ctx := context.Background()
	all := []Listing{
		{ID: "c", Title: "C", Category: "metal"},
		{ID: "b", Title: "B", Category: "wood"},
		{ID: "a", Title: "A", Category: "metal"},
	}
	ts.mockRepo.On("FindAll", ctx).Return(all, nil)
	ts.mockIndex.On("SearchIDs", ctx, "polad").Return([]string{"a", "b", "c", "dangling"}, nil)

	results, err := ts.service.SearchListings(ctx, SearchQuery{Q: "polad", Category: "metal"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c", results[0].ID)
	assert.Equal(t, "a", results[1].ID)
}

func TestService_SearchListings_IndexKeepsInfixMatches(t *testing.T) {
	ts := setupListingServiceTestSuite(t, true)
	ctx := context.Background()
	all := []Listing{
		{ID: "3", Title: "Armatur Polad", Location: "Bakı"},
		{ID: "2", Title: "Taxta Taxtalar", Description: "Şam ağacı, ton rəngli", Location: "Gəncə"},
		{ID: "1", Title: "Beton Bloklar M200", Location: "Ağdam"},
	}
	ts.mockRepo.On("FindAll", ctx).Return(all, nil)
	// The index matches whole-word prefixes only and misses the infix hit in "Beton".
	ts.mockIndex.On("SearchIDs", ctx, "ton").Return([]string{"2"}, nil)

	results, err := ts.service.SearchListings(ctx, SearchQuery{Q: "ton"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "1", results[1].ID)

	withoutIndex := setupListingServiceTestSuite(t, false)
	withoutIndex.mockRepo.On("FindAll", ctx).Return(all, nil)
	plain, err := withoutIndex.service.SearchListings(ctx, SearchQuery{Q: "ton"})
	require.NoError(t, err)
	assert.Equal(t, results, plain)
}

func TestService_SearchListings_IndexErrorFallsBack(t *testing.T) {
	ts := setupListingServiceTestSuite(t, true)
	ctx := context.Background()
	ts.mockRepo.On("FindAll", ctx).Return(DemoListings(), nil)
	ts.mockIndex.On("SearchIDs", ctx, "kabel").Return(nil, errors.New("timeout"))

	results, err := ts.service.SearchListings(ctx, SearchQuery{Q: "kabel"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "8", results[0].ID)
}

func TestService_SearchListings_NoTextSkipsIndex(t *testing.T) {
	ts := setupListingServiceTestSuite(t, true)
	ctx := context.Background()
	ts.mockRepo.On("FindAll", ctx).Return(DemoListings(), nil)

	results, err := ts.service.SearchListings(ctx, SearchQuery{Category: "pipes"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	ts.mockIndex.AssertNotCalled(t, "SearchIDs", mock.Anything, mock.Anything)
}

func TestService_ReplaceListing_PassesID(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	ts.mockRepo.On("Replace", ctx, mock.MatchedBy(func(l *Listing) bool {
		return l.ID == "1" && l.Title == "Beton Bloklar M300"
	})).Return(nil)

	req := validRequest()
	req.Title = "Beton Bloklar M300"
	replaced, err := ts.service.ReplaceListing(ctx, "1", req)

	require.NoError(t, err)
	assert.Equal(t, "1", replaced.ID)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_ReplaceListing_NotFound(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ctx := context.Background()
	ts.mockRepo.On("Replace", ctx, mock.Anything).Return(common.ErrNotFound)

	_, err := ts.service.ReplaceListing(ctx, "missing", validRequest())

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestService_UploadImage_Success(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	header := newUploadHeader(t, "photo.png", "png-bytes", "image/png")

	ref, err := ts.service.UploadImage(context.Background(), header)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "https://cdn.example.com/"))
	assert.True(t, strings.HasSuffix(ts.imageStore.objectName, ".png"))
	assert.Equal(t, "image/png", ts.imageStore.contentType)
	assert.Equal(t, []byte("png-bytes"), ts.imageStore.data)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.ImagesUploadedTotal.WithLabelValues("recording")))
}

func TestService_UploadImage_UnsupportedType(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	header := newUploadHeader(t, "notes.txt", "hello", "text/plain")

	_, err := ts.service.UploadImage(context.Background(), header)

	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestService_UploadImage_StoreFailure(t *testing.T) {
	ts := setupListingServiceTestSuite(t, false)
	ts.imageStore.err = errors.New("bucket gone")
	header := newUploadHeader(t, "photo.jpg", "jpg", "image/jpeg")

	_, err := ts.service.UploadImage(context.Background(), header)

	require.Error(t, err)
	_, isAPI := common.IsAPIError(err)
	assert.False(t, isAPI)
	assert.False(t, errors.Is(err, filestorage.ErrUnsupportedImage))
}
