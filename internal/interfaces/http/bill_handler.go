package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/application/dto"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

// BillHandler facturas de caja, sus documentos y el tablero.
type BillHandler struct {
	bills *billing.BillUseCase
	docs  *billing.DocumentUseCase
	log   *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(bills *billing.BillUseCase, docs *billing.DocumentUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{bills: bills, docs: docs, log: log}
}

// Create godoc
// @Summary      Emitir factura
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.bills.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BillListResponse
// @Router       /api/pos/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	out, err := h.bills.List(c.UserContext(), GetPrincipal(c), pageQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.bills.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Cobrar factura
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.PayBillRequest  true  "Medio de cobro"
// @Success      200   {object}  dto.BillResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/bills/{id}/pay [post]
func (h *BillHandler) Pay(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.PayBillRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.bills.Pay(c.UserContext(), GetPrincipal(c), id, in.Mode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         bills
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/bills/{id} [delete]
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.bills.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/bills/{id}/pdf [get]
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	pdfBytes, filename, err := h.docs.DownloadBillPDF(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// PaymentQR godoc
// @Summary      QR UPI para cobrar la factura
// @Tags         bills
// @Security     Bearer
// @Produce      image/png
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pos/bills/{id}/qr [get]
func (h *BillHandler) PaymentQR(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	png, err := h.docs.PaymentQR(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Dashboard godoc
// @Summary      Resumen del día
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/pos/dashboard [get]
func (h *BillHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.bills.Dashboard(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
