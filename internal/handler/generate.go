package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "github.com/lukaswerth/business-number-service/internal/queue"
    "github.com/lukaswerth/business-number-service/internal/repository"
    "github.com/lukaswerth/business-number-service/internal/sequence"
    queue_publisher "github.com/lukaswerth/business-number-service/internal/service"
)

var numbersIssuedTotal = promauto.NewCounterVec(
    prometheus.CounterOpts{
        Name: "numbers_issued_total",
        Help: "Business numbers issued, partitioned by entity kind",
    },
    []string{"kind"},
)

// entityStore is the slice of CustomerRepo/OrderRepo the generate endpoints
// need: persist a row for a freshly issued number.
type entityStore interface {
    Create(ctx context.Context, number string) (uint64, error)
}

// GenerateHandler exposes the protected issuance endpoints.  One instance
// serves both kinds; the route decides which counter and table are used.
// Publish is overridable so tests do not need a broker.
type GenerateHandler struct {
    Gen       *sequence.Generator
    Customers *repository.CustomerRepo
    Orders    *repository.OrderRepo
    Publish   func(ctx context.Context, ev queue.NumberIssuedEvent) error
}

func NewGenerateHandler(g *sequence.Generator, cr *repository.CustomerRepo, or *repository.OrderRepo) *GenerateHandler {
    return &GenerateHandler{Gen: g, Customers: cr, Orders: or, Publish: queue_publisher.PublishNumberIssued}
}

// Customer issues the next customer number and stores the customer row.
func (h *GenerateHandler) Customer(c echo.Context) error {
    return h.generate(c, sequence.KindCustomer, h.Customers, "customer_number")
}

// Order issues the next order number and stores the order row.
func (h *GenerateHandler) Order(c echo.Context) error {
    return h.generate(c, sequence.KindOrder, h.Orders, "order_number")
}

// generate runs the issue-then-persist flow shared by both kinds.  The two
// steps are separate statements: if the insert fails after the counter
// advanced, that sequence value stays consumed.  The orphaned number is
// logged so operators can account for the gap; there is no compensating
// rollback of an issued number.
func (h *GenerateHandler) generate(c echo.Context, kind sequence.Kind, store entityStore, field string) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    number, err := h.Gen.Next(ctx, kind)
    if err != nil {
        c.Logger().Errorf("generate %s: %v", kind, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error":   "Failed to generate " + string(kind) + " number",
            "success": false,
        })
    }

    if _, err := store.Create(ctx, number); err != nil {
        c.Logger().Errorf("generate %s: number %s issued but row insert failed: %v", kind, number, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{
            "error":   "Failed to generate " + string(kind) + " number",
            "success": false,
        })
    }

    numbersIssuedTotal.WithLabelValues(string(kind)).Inc()
    h.publish(c, kind, number)

    return c.JSON(http.StatusOK, echo.Map{field: number, "success": true})
}

// publish emits the number.issued event.  Best effort: the number is already
// durable, so a broker failure only costs the event.
func (h *GenerateHandler) publish(c echo.Context, kind sequence.Kind, number string) {
    if h.Publish == nil {
        return
    }
    _, year, seq, err := sequence.Parse(number)
    if err != nil {
        return
    }
    username, _ := c.Get("username").(string)
    ev := queue.NumberIssuedEvent{
        Kind:     string(kind),
        Number:   number,
        Year:     year,
        Sequence: seq,
        IssuedBy: username,
        IssuedAt: time.Now().UTC().Format(time.RFC3339),
    }
    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()
    _ = h.Publish(ctx, ev)
}
