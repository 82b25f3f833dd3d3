package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/apierror"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/dto"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/middleware"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ProductoService stub ─────────────────────────────────────────────────────

type stubProductoService struct {
	crearReq    *dto.CrearProductoRequest
	crearImg    *dto.ImagenSubida
	crearErr    error
	obtenerErr  error
	eliminadoID uint
}

func (s *stubProductoService) Crear(_ context.Context, req dto.CrearProductoRequest, img *dto.ImagenSubida) (*dto.ProductoResponse, error) {
	s.crearReq = &req
	s.crearImg = img
	if s.crearErr != nil {
		return nil, s.crearErr
	}
	return &dto.ProductoResponse{ID: 1, Codigo: req.Codigo, Nombre: req.Nombre,
		PresentacionTipo: req.PresentacionTipo, ValorCosto: decimal.RequireFromString(req.ValorCosto),
		ValorVenta: decimal.RequireFromString(req.ValorVenta)}, nil
}

func (s *stubProductoService) ObtenerPorID(_ context.Context, id uint) (*dto.ProductoResponse, error) {
	if s.obtenerErr != nil {
		return nil, s.obtenerErr
	}
	return &dto.ProductoResponse{ID: id, Codigo: "PROD001"}, nil
}

func (s *stubProductoService) Listar(_ context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	return &dto.ProductoListResponse{Data: []dto.ProductoResponse{}, Page: filter.Page, Limit: 10, Filters: filter}, nil
}

func (s *stubProductoService) Actualizar(_ context.Context, id uint, _ dto.ActualizarProductoRequest, _ *dto.ImagenSubida) (*dto.ProductoResponse, error) {
	return &dto.ProductoResponse{ID: id}, nil
}

func (s *stubProductoService) Eliminar(_ context.Context, id uint) error {
	s.eliminadoID = id
	return nil
}

func (s *stubProductoService) ExportarPDF(_ context.Context) ([]byte, string, error) {
	return []byte("%PDF-1.4 stub"), "productos_20251214_093000.pdf", nil
}

func (s *stubProductoService) ExportarExcel(_ context.Context) ([]byte, string, error) {
	return []byte("xlsx stub"), "productos_20251214_093000.xlsx", nil
}

func newTestRouter(svc service.ProductoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	h := NewProductosHandler(svc)
	prods := r.Group("/productos")
	{
		prods.GET("", h.Listar)
		prods.POST("", h.Crear)
		prods.GET("/export/pdf", h.ExportarPDF)
		prods.GET("/export/excel", h.ExportarExcel)
		prods.GET("/:id", h.ObtenerPorID)
		prods.PUT("/:id", h.Actualizar)
		prods.DELETE("/:id", h.Eliminar)
	}
	return r
}

func formProducto(t *testing.T, fields map[string]string, imagen []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imagen != nil {
		fw, err := w.CreateFormFile("imagen", "foto.png")
		require.NoError(t, err)
		_, err = fw.Write(imagen)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

var camposValidos = map[string]string{
	"codigo":            "PROD001",
	"nombre":            "Arroz Diana 500g",
	"presentacion_tipo": "peso",
	"valor_costo":       "2500.00",
	"valor_venta":       "3500.00",
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearMultipart(t *testing.T) {
	svc := &stubProductoService{}
	r := newTestRouter(svc)

	body, contentType := formProducto(t, camposValidos, []byte("\x89PNG\r\n\x1a\nimg"))
	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.crearReq)
	assert.Equal(t, "PROD001", svc.crearReq.Codigo)
	require.NotNil(t, svc.crearImg, "la imagen del formulario debe llegar al servicio")
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nimg"), svc.crearImg.Data)
}

func TestCrearSinImagen(t *testing.T) {
	svc := &stubProductoService{}
	r := newTestRouter(svc)

	body, contentType := formProducto(t, camposValidos, nil)
	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.crearImg)
}

func TestCrearCamposFaltantes(t *testing.T) {
	svc := &stubProductoService{}
	r := newTestRouter(svc)

	body, contentType := formProducto(t, map[string]string{"codigo": "PROD001"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, svc.crearReq, "el servicio no debe ser invocado")

	var ve apierror.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ve))
	assert.Contains(t, ve.Fields, "nombre")
	assert.Contains(t, ve.Fields, "valor_costo")
}

func TestCrearTipoInvalidoRechazadoEnBinding(t *testing.T) {
	svc := &stubProductoService{}
	r := newTestRouter(svc)

	campos := map[string]string{}
	for k, v := range camposValidos {
		campos[k] = v
	}
	campos["presentacion_tipo"] = "docena"

	body, contentType := formProducto(t, campos, nil)
	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var ve apierror.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ve))
	assert.Contains(t, ve.Fields, "presentacion_tipo")
}

func TestCrearConflictoDeCodigo(t *testing.T) {
	svc := &stubProductoService{crearErr: apierror.NewValidationField("codigo", "ya existe un producto con este codigo")}
	r := newTestRouter(svc)

	body, contentType := formProducto(t, camposValidos, nil)
	req := httptest.NewRequest(http.MethodPost, "/productos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestObtenerNoEncontrado(t *testing.T) {
	svc := &stubProductoService{obtenerErr: service.ErrProductoNoEncontrado}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/productos/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestObtenerIDInvalido(t *testing.T) {
	r := newTestRouter(&stubProductoService{})

	req := httptest.NewRequest(http.MethodGet, "/productos/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEliminar(t *testing.T) {
	svc := &stubProductoService{}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/productos/7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(7), svc.eliminadoID)
}

func TestExportarPDFDescarga(t *testing.T) {
	r := newTestRouter(&stubProductoService{})

	req := httptest.NewRequest(http.MethodGet, "/productos/export/pdf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "productos_20251214_093000.pdf")
}

func TestExportarExcelDescarga(t *testing.T) {
	r := newTestRouter(&stubProductoService{})

	req := httptest.NewRequest(http.MethodGet, "/productos/export/excel", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMime, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
}

func TestListarConFiltros(t *testing.T) {
	r := newTestRouter(&stubProductoService{})

	req := httptest.NewRequest(http.MethodGet, "/productos?marca=Diana&page=2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ProductoListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, "Diana", resp.Filters.Marca)
}
