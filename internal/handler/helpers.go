package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.ValidationFields(fields))
		return false
	}
	return true
}

// respondError renders a service error with the status code its kind maps to.
// Anything that is not an *apierror.Error is logged and rendered as a 500.
func respondError(c *gin.Context, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == apierror.KindInternal {
			log.Error().Err(errors.Unwrap(apiErr)).Str("path", c.FullPath()).Msg("internal error")
		}
		c.JSON(apiErr.HTTPStatus(), apiErr)
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unclassified error")
	c.JSON(http.StatusInternalServerError, apierror.Internal(err))
}

// parseID parses the :id path param as a UUID, writing the error response on
// failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
