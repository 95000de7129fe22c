package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lukaswerth/business-number-service/internal/repository"
    "github.com/lukaswerth/business-number-service/internal/sequence"
)

// LookupHandler serves read-only views of stored customers and orders.
type LookupHandler struct {
    Customers *repository.CustomerRepo
    Orders    *repository.OrderRepo
}

func NewLookupHandler(cr *repository.CustomerRepo, or *repository.OrderRepo) *LookupHandler {
    return &LookupHandler{Customers: cr, Orders: or}
}

type customerResp struct {
    ID             uint64  `json:"id"`
    CustomerNumber string  `json:"customer_number"`
    Name           *string `json:"name,omitempty"`
    Email          *string `json:"email,omitempty"`
    CreatedAt      string  `json:"created_at"`
}

type orderResp struct {
    ID             uint64          `json:"id"`
    OrderNumber    string          `json:"order_number"`
    CustomerNumber *string         `json:"customer_number,omitempty"`
    OrderDetails   json.RawMessage `json:"order_details,omitempty"`
    CreatedAt      string          `json:"created_at"`
}

// Customer returns the customer behind a number, 404 when unknown.  The
// number is validated against the issued format before touching the
// database, so garbage input never reaches the repository.
func (h *LookupHandler) Customer(c echo.Context) error {
    number := c.Param("number")
    if !sequence.IsNumber(number) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed number"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cust, err := h.Customers.FindByNumber(ctx, number)
    if err == repository.ErrNotFound {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    if err != nil {
        c.Logger().Errorf("lookup customer: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, customerResp{
        ID:             cust.ID,
        CustomerNumber: cust.CustomerNumber,
        Name:           cust.Name,
        Email:          cust.Email,
        CreatedAt:      cust.CreatedAt.UTC().Format(time.RFC3339),
    })
}

// Order returns the order behind a number, 404 when unknown.
func (h *LookupHandler) Order(c echo.Context) error {
    number := c.Param("number")
    if !sequence.IsNumber(number) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed number"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ord, err := h.Orders.FindByNumber(ctx, number)
    if err == repository.ErrNotFound {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    if err != nil {
        c.Logger().Errorf("lookup order: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, orderResp{
        ID:             ord.ID,
        OrderNumber:    ord.OrderNumber,
        CustomerNumber: ord.CustomerNumber,
        OrderDetails:   json.RawMessage(ord.OrderDetails),
        CreatedAt:      ord.CreatedAt.UTC().Format(time.RFC3339),
    })
}
