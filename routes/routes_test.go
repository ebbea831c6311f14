package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baptisteba/PassChef/config"
	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/db"
	"github.com/baptisteba/PassChef/handlers"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/baptisteba/PassChef/storage"
	"github.com/baptisteba/PassChef/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testStack struct {
	t      *testing.T
	router *gin.Engine
	sm     *services.ServiceManager
	token  string
	actor  services.Actor
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named in-memory database keeps every pooled connection on the same
	// data while isolating tests from each other.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db.AllModels()...))

	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:   []byte("routes-test-secret"),
		CORSOrigins: []string{"http://localhost:5173"},
	}

	sm := services.NewServiceManager(database, blobs, cfg)
	router := SetupRoutes(handlers.NewHandlerManager(sm), cfg)

	user := models.User{
		ID:        uuid.New(),
		Name:      "Owner",
		Email:     "owner@example.com",
		Password:  "hashed",
		Role:      string(constants.RoleGroupOwner),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, database.Create(&user).Error)

	token, err := utils.GenerateJWT(utils.JWTUser{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, cfg.JWTSecret)
	require.NoError(t, err)

	return &testStack{
		t:      t,
		router: router,
		sm:     sm,
		token:  token,
		actor:  services.Actor{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}
}

func (s *testStack) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-auth-token", s.token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testStack) newSite() *models.Site {
	s.t.Helper()

	group, err := s.sm.GroupService.Create(context.Background(), s.actor, &models.CreateGroupRequest{Name: "Retail France"})
	require.NoError(s.t, err)
	site, err := s.sm.SiteService.Create(context.Background(), s.actor, &models.CreateSiteRequest{GroupID: group.ID, Name: "Paris HQ"})
	require.NoError(s.t, err)
	return site
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestSiteNestedWifiDeploymentRoutes(t *testing.T) {
	s := newTestStack(t)
	site := s.newSite()
	base := "/api/sites/" + site.ID.String() + "/wifi-deployment"

	w := s.do(http.MethodPost, base, gin.H{"name": "AP rollout"})
	require.Equal(t, http.StatusCreated, w.Code)
	var deployment models.WifiDeployment
	decodeData(t, w, &deployment)
	require.NotEqual(t, uuid.Nil, deployment.ID)

	w = s.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, base+"/"+deployment.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, base+"/"+deployment.ID.String(), gin.H{"status": constants.DeploymentInProgress})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.WifiDeployment
	decodeData(t, w, &updated)
	assert.Equal(t, constants.DeploymentInProgress, updated.Status)

	w = s.do(http.MethodPost, base+"/"+deployment.ID.String()+"/archive", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	archived, err := s.sm.DeploymentService.ListArchivedBySite(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Len(t, archived, 1)
}

func TestSiteNestedWifiDeploymentDelete(t *testing.T) {
	s := newTestStack(t)
	site := s.newSite()
	base := "/api/sites/" + site.ID.String() + "/wifi-deployment"

	w := s.do(http.MethodPost, base, gin.H{"name": "AP rollout"})
	require.Equal(t, http.StatusCreated, w.Code)
	var deployment models.WifiDeployment
	decodeData(t, w, &deployment)

	w = s.do(http.MethodDelete, base+"/"+deployment.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := s.sm.DeploymentService.Get(context.Background(), deployment.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSiteNestedWANAndToolRoutes(t *testing.T) {
	s := newTestStack(t)
	site := s.newSite()
	prefix := "/api/sites/" + site.ID.String()

	w := s.do(http.MethodPost, prefix+"/wan-connections", gin.H{
		"provider":  "Orange",
		"link_type": "FTTH",
		"bandwidth": "1 Gbps",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var wan models.WANDeployment
	decodeData(t, w, &wan)
	assert.Equal(t, site.ID, wan.SiteID)

	w = s.do(http.MethodGet, prefix+"/wan-connections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wans []models.WANDeployment
	decodeData(t, w, &wans)
	assert.Len(t, wans, 1)

	// The path site wins even when the body names another site.
	w = s.do(http.MethodPost, prefix+"/external-tools", gin.H{
		"site_id": uuid.New(),
		"name":    "Grafana",
		"url":     "https://grafana.example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var tool models.ExternalTool
	decodeData(t, w, &tool)
	assert.Equal(t, site.ID, tool.SiteID)
}

func TestSiteNestedDocumentUpload(t *testing.T) {
	s := newTestStack(t)
	site := s.newSite()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "floorplan.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("name", "Floor plan"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sites/"+site.ID.String()+"/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("x-auth-token", s.token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var document models.Document
	decodeData(t, w, &document)
	assert.Equal(t, site.ID, document.SiteID)
	assert.Equal(t, "Floor plan", document.Name)

	w = s.do(http.MethodGet, "/api/sites/"+site.ID.String()+"/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var documents []models.Document
	decodeData(t, w, &documents)
	assert.Len(t, documents, 1)
}
