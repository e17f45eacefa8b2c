package handler

import (
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"shopgram/internal/domain/service"
	"shopgram/internal/usecase"
	"shopgram/pkg/errors"
	"shopgram/pkg/response"
	"shopgram/pkg/utils"
)

const maxImageSize = 5 * 1024 * 1024

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	socialUseCase  *usecase.SocialUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, socialUseCase *usecase.SocialUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		socialUseCase:  socialUseCase,
	}
}

type commentRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	// Plain array by default; paginated envelope when the client asks.
	if c.QueryParam("page") == "" && c.QueryParam("limit") == "" {
		products, _, err := h.productUseCase.ListProducts(c.Request().Context(), 0, 0)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, products)
	}

	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return response.Error(c, err)
	}

	image, cleanup, err := imageAttachment(c)
	if err != nil {
		return response.Error(c, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	product, warning, err := h.productUseCase.CreateProduct(c.Request().Context(), actorID(c), fields, image)
	if err != nil {
		return response.Error(c, err)
	}

	if warning != "" {
		return response.Success(c, map[string]interface{}{
			"product": product,
			"warning": warning,
		})
	}

	return response.Success(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	fields, err := bindFields(c)
	if err != nil {
		return response.Error(c, err)
	}

	image, cleanup, err := imageAttachment(c)
	if err != nil {
		return response.Error(c, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), actorID(c), id, fields, image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	product, err := h.productUseCase.DeleteProduct(c.Request().Context(), actorID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"result":  "remove successfully",
		"product": product,
	})
}

func (h *ProductHandler) LikeProduct(c echo.Context) error {
	product, err := h.socialUseCase.AddLike(c.Request().Context(), c.Param("id"), actorID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product.Likes)
}

func (h *ProductHandler) UnlikeProduct(c echo.Context) error {
	product, err := h.socialUseCase.RemoveLike(c.Request().Context(), c.Param("id"), actorID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product.Likes)
}

func (h *ProductHandler) CommentProduct(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid payload", err))
	}

	// Transport-level check; the usecase re-validates after trimming.
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.socialUseCase.AddComment(c.Request().Context(), c.Param("id"), actorID(c), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product.Comments)
}

func (h *ProductHandler) UncommentProduct(c echo.Context) error {
	product, err := h.socialUseCase.RemoveComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), actorID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product.Comments)
}

func actorID(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}

// bindFields collects the client-supplied product fields from either a
// multipart form or a JSON body into a loose field map.
func bindFields(c echo.Context) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, errors.BadRequest("Invalid form payload", err)
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields, nil
	}

	if c.Request().ContentLength == 0 {
		return fields, nil
	}

	if err := c.Bind(&fields); err != nil {
		return nil, errors.BadRequest("Invalid JSON payload", err)
	}

	return fields, nil
}

// imageAttachment extracts the optional multipart "image" file. The
// extension allow-list is enforced here, before anything touches the asset
// store. The returned cleanup func closes the underlying file.
func imageAttachment(c echo.Context) (*service.ImageUpload, func(), error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, nil, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, errors.BadRequest("Invalid image attachment", err)
	}

	if file.Size > maxImageSize {
		return nil, nil, errors.BadRequest("Image exceeds the 5MB limit", nil)
	}

	if !allowedImageFile(file.Filename) {
		return nil, nil, errors.BadRequest("Please upload an image (.jpg, .jpeg or .png)", nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, errors.Internal("Unable to read image", err)
	}

	upload := &service.ImageUpload{
		Filename: file.Filename,
		Content:  src,
	}

	return upload, func() { src.Close() }, nil
}

func allowedImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
