package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/apierror"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/dto"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/model"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/report"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/repository"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrProductoNoEncontrado is returned for unknown product ids.
var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// maxImagenBytes limits uploads to 2MB.
const maxImagenBytes = 2 << 20

var tiposImagenPermitidos = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ProductoService defines the business logic contract for the catalog.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest, img *dto.ImagenSubida) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest, img *dto.ImagenSubida) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
	// Exports return the document bytes plus a timestamped attachment filename.
	ExportarPDF(ctx context.Context) ([]byte, string, error)
	ExportarExcel(ctx context.Context) ([]byte, string, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	blobs    storage.BlobStore
	logoPath string
}

func NewProductoService(repo repository.ProductoRepository, blobs storage.BlobStore, logoPath string) ProductoService {
	return &productoService{repo: repo, blobs: blobs, logoPath: logoPath}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest, img *dto.ImagenSubida) (*dto.ProductoResponse, error) {
	fields := make(map[string]string)

	costo := parsearMonto(req.ValorCosto, "valor_costo", fields)
	venta := parsearMonto(req.ValorVenta, "valor_venta", fields)

	// Re-checked here so non-HTTP callers get the same guarantee as the
	// handler's oneof tag: no other value is ever persisted.
	if !model.PresentacionTipoValido(req.PresentacionTipo) {
		fields["presentacion_tipo"] = "debe ser 'unidad' o 'peso'"
	}

	if err := s.verificarCodigoUnico(ctx, req.Codigo, 0, fields); err != nil {
		return nil, err
	}
	contentType := validarImagen(img, fields)

	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	// Blob first — the record is only created once storage succeeded.
	var locator *string
	if img != nil {
		loc, err := s.blobs.Put(ctx, img.Data, contentType)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		locator = &loc
	}

	p := &model.Producto{
		Codigo:            req.Codigo,
		Nombre:            req.Nombre,
		PresentacionTipo:  req.PresentacionTipo,
		PresentacionValor: req.PresentacionValor,
		Imagen:            locator,
		ValorCosto:        costo,
		ValorVenta:        venta,
		Marca:             req.Marca,
		Observaciones:     req.Observaciones,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// No partial state: the fresh blob must not outlive a failed insert.
		s.borrarBlob(ctx, locator)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.NewValidationField("codigo", "ya existe un producto con este codigo")
		}
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, toResponse(&productos[i]))
	}

	totalPages := int((total + repository.PageSize - 1) / repository.PageSize)
	return &dto.ProductoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      repository.PageSize,
		TotalPages: totalPages,
		Filters:    filter,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest, img *dto.ImagenSubida) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	fields := make(map[string]string)

	var costo, venta decimal.Decimal
	if req.ValorCosto != nil {
		costo = parsearMonto(*req.ValorCosto, "valor_costo", fields)
	}
	if req.ValorVenta != nil {
		venta = parsearMonto(*req.ValorVenta, "valor_venta", fields)
	}
	if req.PresentacionTipo != nil && !model.PresentacionTipoValido(*req.PresentacionTipo) {
		fields["presentacion_tipo"] = "debe ser 'unidad' o 'peso'"
	}
	if req.Codigo != nil && *req.Codigo == "" {
		fields["codigo"] = "es obligatorio"
	}
	if req.Codigo != nil && *req.Codigo != "" {
		if err := s.verificarCodigoUnico(ctx, *req.Codigo, id, fields); err != nil {
			return nil, err
		}
	}
	if req.Nombre != nil && *req.Nombre == "" {
		fields["nombre"] = "es obligatorio"
	}
	contentType := validarImagen(img, fields)

	if len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}

	// Write-new, switch reference, delete-old: the record never points at a
	// blob that does not exist.
	var imagenAnterior, imagenNueva *string
	if img != nil {
		loc, err := s.blobs.Put(ctx, img.Data, contentType)
		if err != nil {
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		imagenAnterior = p.Imagen
		imagenNueva = &loc
		p.Imagen = imagenNueva
	}

	if req.Codigo != nil {
		p.Codigo = *req.Codigo
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.PresentacionTipo != nil {
		p.PresentacionTipo = *req.PresentacionTipo
	}
	if req.PresentacionValor != nil {
		p.PresentacionValor = req.PresentacionValor
	}
	if req.ValorCosto != nil {
		p.ValorCosto = costo
	}
	if req.ValorVenta != nil {
		p.ValorVenta = venta
	}
	if req.Marca != nil {
		p.Marca = req.Marca
	}
	if req.Observaciones != nil {
		p.Observaciones = req.Observaciones
	}

	if err := s.repo.Update(ctx, p); err != nil {
		// Drop the new blob that never got referenced.
		s.borrarBlob(ctx, imagenNueva)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.NewValidationField("codigo", "ya existe un producto con este codigo")
		}
		return nil, err
	}

	// Old blob is now unreferenced; losing it on failure only orphans a file.
	s.borrarBlob(ctx, imagenAnterior)

	resp := toResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}

	// Blob orphaning is an accepted failure mode — log and proceed.
	s.borrarBlob(ctx, p.Imagen)
	return nil
}

func (s *productoService) ExportarPDF(ctx context.Context) ([]byte, string, error) {
	productos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	ahora := time.Now()
	doc, err := report.GenerarPDF(productos, ahora)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("productos_%s.pdf", ahora.Format("20060102_150405")), nil
}

func (s *productoService) ExportarExcel(ctx context.Context) ([]byte, string, error) {
	productos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	ahora := time.Now()
	doc, err := report.GenerarExcel(productos, ahora, s.logoPath)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("productos_%s.xlsx", ahora.Format("20060102_150405")), nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// parsearMonto parses a monetary form value. Negative values and values with
// more than two decimal places are rejected — amounts are stored at exactly
// decimal(10,2), never silently rounded.
func parsearMonto(valor, field string, fields map[string]string) decimal.Decimal {
	d, err := decimal.NewFromString(valor)
	if err != nil {
		fields[field] = "debe ser un valor numerico"
		return decimal.Zero
	}
	if d.IsNegative() {
		fields[field] = "debe ser mayor o igual a 0"
		return decimal.Zero
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		fields[field] = "admite maximo dos decimales"
		return decimal.Zero
	}
	return d
}

// verificarCodigoUnico adds a field error when another record already uses
// codigo. The DB unique constraint remains the arbiter under races; this
// pre-check just produces a friendlier form error.
func (s *productoService) verificarCodigoUnico(ctx context.Context, codigo string, excludeID uint, fields map[string]string) error {
	_, err := s.repo.FindByCodigo(ctx, codigo, excludeID)
	switch {
	case err == nil:
		fields["codigo"] = "ya existe un producto con este codigo"
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// validarImagen enforces the 2MB limit and the jpeg/png/gif allowlist,
// sniffing the actual bytes rather than trusting the upload header.
// Returns the sniffed content type for blob storage.
func validarImagen(img *dto.ImagenSubida, fields map[string]string) string {
	if img == nil {
		return ""
	}
	if len(img.Data) == 0 {
		fields["imagen"] = "el archivo esta vacio"
		return ""
	}
	if len(img.Data) > maxImagenBytes {
		fields["imagen"] = "no debe superar 2MB"
		return ""
	}
	contentType := http.DetectContentType(img.Data)
	if !tiposImagenPermitidos[contentType] {
		fields["imagen"] = "debe ser una imagen jpeg, png, jpg o gif"
		return ""
	}
	return contentType
}

// borrarBlob removes a blob best-effort; failures are logged, never fatal.
func (s *productoService) borrarBlob(ctx context.Context, locator *string) {
	if locator == nil {
		return
	}
	if err := s.blobs.Delete(ctx, *locator); err != nil {
		log.Warn().Err(err).Str("locator", *locator).Msg("no se pudo eliminar el blob")
	}
}

func toResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:                p.ID,
		Codigo:            p.Codigo,
		Nombre:            p.Nombre,
		PresentacionTipo:  p.PresentacionTipo,
		PresentacionValor: p.PresentacionValor,
		Imagen:            p.Imagen,
		ValorCosto:        p.ValorCosto,
		ValorVenta:        p.ValorVenta,
		Marca:             p.Marca,
		Observaciones:     p.Observaciones,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
