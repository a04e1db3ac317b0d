package v1

import (
	ct_uuid "github.com/centavo/backend/internal/uuid"
)

type URIID struct {
	ID ct_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// TransactionCount is the result of probing a resource for dependent
// transactions before deleting it.
type TransactionCount struct {
	Count int64 `json:"count" example:"7"` // Number of transactions referencing the resource
}

type TransactionCountResponse struct {
	Data  *TransactionCount `json:"data"`                                                          // The number of dependent transactions
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// DeletionBlockedResponse is returned when a resource cannot be deleted
// without an explicit deletion action.
type DeletionBlockedResponse struct {
	Error        string   `json:"error" example:"transactions reference this resource, the deletion action must be specified explicitly"` // Why the deletion was refused
	Transactions int64    `json:"transactions" example:"7"`                                                                               // Number of transactions referencing the resource
	Actions      []string `json:"actions" example:"setNull,deleteAll"`                                                                    // Actions that resolve the deletion
}
