package model

import "time"

// Customer mirrors a row of the `customers` table.  A customer is created
// the moment its number is issued; name and email stay empty until the row
// is enriched by a later import, so both are nullable.
//
// Fields:
//  ID             – primary key identifier.
//  CustomerNumber – issued identifier, e.g. "C25-0000001".
//  Name           – optional display name.
//  Email          – optional contact address.
//  CreatedAt      – creation timestamp.
type Customer struct {
    ID             uint64    // customers.id
    CustomerNumber string    // customers.customer_number
    Name           *string   // customers.name (nullable)
    Email          *string   // customers.email (nullable)
    CreatedAt      time.Time // customers.created_at
}
