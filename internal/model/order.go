package model

import "time"

// Order mirrors a row of the `orders` table.  Like customers, an order row
// exists as soon as its number is issued.  CustomerNumber optionally links
// the order to the customer it belongs to; OrderDetails holds the raw JSON
// document of line items when one is supplied.
//
// Fields:
//  ID             – primary key identifier.
//  OrderNumber    – issued identifier, e.g. "O25-0000042".
//  CustomerNumber – customer the order belongs to, if known.
//  OrderDetails   – raw JSON payload with order contents, if any.
//  CreatedAt      – creation timestamp.
type Order struct {
    ID             uint64    // orders.id
    OrderNumber    string    // orders.order_number
    CustomerNumber *string   // orders.customer_number (nullable)
    OrderDetails   []byte    // orders.order_details (nullable JSON)
    CreatedAt      time.Time // orders.created_at
}
