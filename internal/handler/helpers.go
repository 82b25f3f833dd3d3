package handler

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/apierror"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/dto"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report field errors under the form name the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// bindAndValidate binds the form body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = mensajeParaTag(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func mensajeParaTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "max":
		return "no debe superar " + fe.Param() + " caracteres"
	case "min":
		return "debe ser al menos " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "es invalido"
	}
}

// leerImagen extracts the optional "imagen" upload from a multipart form.
// A missing file (or a non-multipart body) is simply no image.
func leerImagen(c *gin.Context) (*dto.ImagenSubida, error) {
	fh, err := c.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.ImagenSubida{Data: data, ContentType: fh.Header.Get("Content-Type")}, nil
}

// responderError maps service errors onto the response taxonomy:
// ValidationError → 422, not-found → 404, everything else → 500 via the
// error-handler middleware.
func responderError(c *gin.Context, err error) {
	var ve *apierror.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, ve)
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
	default:
		_ = c.Error(err)
	}
}
