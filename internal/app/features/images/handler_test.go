package images

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	"github.com/tacar/listhub/internal/domain/models"
	"github.com/tacar/listhub/internal/testutil"
)

// memImages is an in-memory ImageStore with the Mongo store's contract:
// sort_order assigned append-at-end on Create, ErrNotFound on missing
// documents, row-order listing.
type memImages struct {
	mu   sync.Mutex
	byID map[models.ImageID]models.Image
}

func newMemImages() *memImages {
	return &memImages{byID: make(map[models.ImageID]models.Image)}
}

func (m *memImages) Create(_ context.Context, img models.Image) (models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, ex := range m.byID {
		if ex.CategoryID == img.CategoryID {
			n++
		}
	}
	now := time.Now().UTC()
	img.ID = models.NewImageID()
	img.AppID = models.AppOCRCSV
	img.SortOrder = n
	img.CreatedAt = now
	img.UpdatedAt = now
	m.byID[img.ID] = img
	return img, nil
}

func (m *memImages) GetByID(_ context.Context, id models.ImageID) (models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.byID[id]
	if !ok {
		return models.Image{}, access.ErrNotFound
	}
	return img, nil
}

func (m *memImages) ListByCategory(_ context.Context, catID models.CategoryID) ([]models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Image
	for _, img := range m.byID {
		if img.CategoryID == catID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memImages) UpdateOCR(_ context.Context, id models.ImageID, ocr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	img.OCRResult = ocr
	img.UpdatedAt = time.Now().UTC()
	m.byID[id] = img
	return nil
}

func (m *memImages) SetSortOrder(_ context.Context, id models.ImageID, order int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.byID[id]
	if !ok {
		return access.ErrNotFound
	}
	img.SortOrder = order
	img.UpdatedAt = time.Now().UTC()
	m.byID[id] = img
	return nil
}

func (m *memImages) Delete(_ context.Context, id models.ImageID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type imageEnv struct {
	h      *Handler
	svc    *access.Service
	images *memImages
	users  *testutil.MemUsers
}

func newImageEnv(t *testing.T) *imageEnv {
	t.Helper()
	cats := testutil.NewMemCategories()
	users := testutil.NewMemUsers()
	svc := access.New(cats, users, nil, 0)
	images := newMemImages()
	return &imageEnv{
		h:      NewHandler(svc, images, zap.NewNop()),
		svc:    svc,
		images: images,
		users:  users,
	}
}

func (e *imageEnv) addUser(t *testing.T, name, email string) testutil.TestUser {
	t.Helper()
	u := testutil.NewTestUser(models.AppOCRCSV, name, email)
	e.users.Put(models.User{ID: u.ID, AppID: models.AppOCRCSV, DisplayName: name, Email: email})
	return u
}

func (e *imageEnv) createCategory(t *testing.T, owner testutil.TestUser) models.CategoryID {
	t.Helper()
	id, err := e.svc.Create(context.Background(), models.AppOCRCSV, "Receipts", owner.ID)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return id
}

func (e *imageEnv) createImage(t *testing.T, catID models.CategoryID, creator testutil.TestUser, fileName, ocr string) models.Image {
	t.Helper()
	img, err := e.images.Create(context.Background(), models.Image{
		CategoryID: catID,
		FileName:   fileName,
		StorageKey: storageKey(catID, fileName),
		MimeType:   "image/jpeg",
		OCRResult:  ocr,
		CreatedBy:  creator.ID,
	})
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	return img
}

// Routes answer only in the ocrcsv namespace.
func TestImageRoutesPinnedToNamespace(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	img := e.createImage(t, catID, owner, "scan.jpg", "")

	root := chi.NewRouter()
	root.Route("/api/{app}", func(r chi.Router) {
		r.Mount("/images", Routes(e.h))
	})

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/ocrcsv/images/"+img.ID.Hex(), "", owner)
	w := testutil.NewRecorder()
	root.ServeHTTP(w, r)
	w.AssertStatus(t, http.StatusOK)

	r = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/kaumono/images/"+img.ID.Hex(), "", owner)
	w = testutil.NewRecorder()
	root.ServeHTTP(w, r)
	w.AssertStatus(t, http.StatusNotFound)
}

func TestImageCreate(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)

	body := `{"fileName":"page-1.jpg","mimeType":"image/jpeg","ocrResult":"hello"}`
	r := testutil.NewAuthenticatedRequest(http.MethodPost, "/", body, owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "categoryID", catID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeCreate(w, r)

	w.AssertStatus(t, http.StatusCreated)

	var img models.Image
	if err := json.Unmarshal(w.Body.Bytes(), &img); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if img.SortOrder != 0 {
		t.Errorf("sortOrder: got %d, want 0", img.SortOrder)
	}
	if !strings.HasPrefix(img.StorageKey, "images/"+catID.Hex()+"/") {
		t.Errorf("storageKey %q missing category prefix", img.StorageKey)
	}
	if !strings.HasSuffix(img.StorageKey, ".jpg") {
		t.Errorf("storageKey %q missing extension", img.StorageKey)
	}
}

func TestImageCreateRejectsMimeType(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)

	body := `{"fileName":"evil.svg","mimeType":"image/svg+xml"}`
	r := testutil.NewAuthenticatedRequest(http.MethodPost, "/", body, owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "categoryID", catID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeCreate(w, r)
	w.AssertStatus(t, http.StatusBadRequest)
}

func TestImageSortOrderAppends(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)

	first := e.createImage(t, catID, owner, "a.jpg", "")
	second := e.createImage(t, catID, owner, "b.jpg", "")
	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Errorf("sort orders: got %d,%d, want 0,1", first.SortOrder, second.SortOrder)
	}
}

func TestImageReorder(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	a := e.createImage(t, catID, owner, "a.jpg", "")
	b := e.createImage(t, catID, owner, "b.jpg", "")

	body := `{"imageIds":["` + b.ID.Hex() + `","` + a.ID.Hex() + `"]}`
	r := testutil.NewAuthenticatedRequest(http.MethodPut, "/order", body, owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "categoryID", catID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeReorder(w, r)
	w.AssertStatus(t, http.StatusNoContent)

	imgs, err := e.images.ListByCategory(context.Background(), catID)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if imgs[0].ID != b.ID {
		t.Errorf("first image after reorder: got %s, want %s", imgs[0].ID.Hex(), b.ID.Hex())
	}
}

func TestImageReorderRejectsForeignImage(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	otherCat := e.createCategory(t, owner)
	foreign := e.createImage(t, otherCat, owner, "x.jpg", "")
	mine := e.createImage(t, catID, owner, "a.jpg", "")

	body := `{"imageIds":["` + foreign.ID.Hex() + `","` + mine.ID.Hex() + `"]}`
	r := testutil.NewAuthenticatedRequest(http.MethodPut, "/order", body, owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "categoryID", catID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeReorder(w, r)
	w.AssertStatus(t, http.StatusBadRequest)

	// The foreign image must not have moved.
	got, err := e.images.GetByID(context.Background(), foreign.ID)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	if got.SortOrder != 0 {
		t.Errorf("foreign sortOrder: got %d, want 0", got.SortOrder)
	}
}

func TestImageUpdateOCR(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	img := e.createImage(t, catID, owner, "a.jpg", "old text")

	r := testutil.NewAuthenticatedRequest(http.MethodPatch, "/"+img.ID.Hex()+"/ocr", `{"ocrResult":"new text"}`, owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "imageID", img.ID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeUpdateOCR(w, r)
	w.AssertStatus(t, http.StatusNoContent)

	got, err := e.images.GetByID(context.Background(), img.ID)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	if got.OCRResult != "new text" {
		t.Errorf("ocrResult: got %q, want %q", got.OCRResult, "new text")
	}
}

func TestImageGetNonMember(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	outsider := e.addUser(t, "Ben", "ben@example.com")
	catID := e.createCategory(t, owner)
	img := e.createImage(t, catID, owner, "a.jpg", "")

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/"+img.ID.Hex(), "", outsider)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "imageID", img.ID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeGet(w, r)
	w.AssertStatus(t, http.StatusForbidden)
}

func TestImageDelete(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	img := e.createImage(t, catID, owner, "a.jpg", "")

	r := testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+img.ID.Hex(), "", owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "imageID", img.ID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeDelete(w, r)
	w.AssertStatus(t, http.StatusNoContent)

	if _, err := e.images.GetByID(context.Background(), img.ID); err == nil {
		t.Error("image still present after delete")
	}
}

func TestImageCSV(t *testing.T) {
	e := newImageEnv(t)
	owner := e.addUser(t, "Aki", "aki@example.com")
	catID := e.createCategory(t, owner)
	e.createImage(t, catID, owner, "a.jpg", "first page")
	e.createImage(t, catID, owner, "b.jpg", "second page")

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/csv", "", owner)
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	r = testutil.WithChiURLParam(r, "categoryID", catID.Hex())
	w := testutil.NewRecorder()
	e.h.ServeCSV(w, r)

	w.AssertStatus(t, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines: got %d, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "first page") {
		t.Errorf("row 1 %q missing first page text", lines[1])
	}
	if !strings.Contains(lines[2], "second page") {
		t.Errorf("row 2 %q missing second page text", lines[2])
	}
}
