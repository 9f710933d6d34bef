package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/account"
	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/internal/domain"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// AccountHandler perfil del negocio, cajeros e identidad de la sesión.
type AccountHandler struct {
	uc  *account.UseCase
	log *logger.Logger
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *account.UseCase, log *logger.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, log: log}
}

// GetProfile godoc
// @Summary      Perfil del negocio
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/admin/profile [get]
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil del negocio
// @Tags         account
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AdminProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/profile [put]
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo del negocio
// @Tags         account
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "PNG, JPEG o WEBP (máx. 2 MB)"
// @Success      200   {object}  dto.AdminProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/admin/profile/logo [post]
func (h *AccountHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("logo")
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("%w: falta el archivo 'logo'", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("abrir logo: %w", err))
	}
	defer f.Close()

	out, err := h.uc.UploadLogo(c.UserContext(), GetPrincipal(c), fh.Header.Get(fiber.HeaderContentType), f, fh.Size)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidad de la sesión (admin o cajero)
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pos/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateCashier godoc
// @Summary      Crear cajero
// @Tags         cashiers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashierRequest  true  "Datos del cajero"
// @Success      201   {object}  dto.CashierResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/cashiers [post]
func (h *AccountHandler) CreateCashier(c *fiber.Ctx) error {
	var in dto.CreateCashierRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.CreateCashier(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCashiers godoc
// @Summary      Listar cajeros
// @Tags         cashiers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CashierListResponse
// @Router       /api/admin/cashiers [get]
func (h *AccountHandler) ListCashiers(c *fiber.Ctx) error {
	out, err := h.uc.ListCashiers(c.UserContext(), GetPrincipal(c), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetCashier godoc
// @Summary      Obtener cajero
// @Tags         cashiers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cajero"
// @Success      200  {object}  dto.CashierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/cashiers/{id} [get]
func (h *AccountHandler) GetCashier(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetCashier(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateCashier godoc
// @Summary      Actualizar cajero
// @Tags         cashiers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cajero"
// @Param        body  body  dto.UpdateCashierRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CashierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/cashiers/{id} [put]
func (h *AccountHandler) UpdateCashier(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateCashierRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateCashier(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteCashier godoc
// @Summary      Eliminar cajero
// @Tags         cashiers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cajero"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/cashiers/{id} [delete]
func (h *AccountHandler) DeleteCashier(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.DeleteCashier(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
