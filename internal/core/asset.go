package core

type AssetType string

const (
	AssetTypeReturnable    AssetType = "Returnable"
	AssetTypeNonReturnable AssetType = "Non-returnable"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeReturnable || t == AssetTypeNonReturnable
}

// AssetCategory 列表篩選用的分類標記
type AssetCategory string

const (
	CategoryNone          AssetCategory = ""
	CategoryReturnable    AssetCategory = "Returnable"
	CategoryNonReturnable AssetCategory = "Non-returnable"
	CategoryInStock       AssetCategory = "In Stock"
	CategoryOutOfStock    AssetCategory = "Out of Stock"
)

func (c AssetCategory) Valid() bool {
	switch c {
	case CategoryNone, CategoryReturnable, CategoryNonReturnable, CategoryInStock, CategoryOutOfStock:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusReturned  RequestStatus = "returned"
	RequestStatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusReturned, RequestStatusCancelled:
		return true
	}
	return false
}

// Live pending / approved 視為仍佔用中的申請
func (s RequestStatus) Live() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved: {RequestStatusReturned, RequestStatusCancelled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
