package core

// SubscriptionPackage 訂閱方案，Price 以最小貨幣單位計
type SubscriptionPackage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberLimit int    `json:"memberLimit"`
	Price       int64  `json:"price"`
}

var subscriptionPackages = []SubscriptionPackage{
	{ID: "basic", Name: "Basic", MemberLimit: 5, Price: 500},
	{ID: "standard", Name: "Standard", MemberLimit: 10, Price: 800},
	{ID: "premium", Name: "Premium", MemberLimit: 20, Price: 1500},
}

func SubscriptionPackages() []SubscriptionPackage {
	out := make([]SubscriptionPackage, len(subscriptionPackages))
	copy(out, subscriptionPackages)
	return out
}

func FindSubscriptionPackage(id string) (SubscriptionPackage, bool) {
	for _, p := range subscriptionPackages {
		if p.ID == id {
			return p, true
		}
	}
	return SubscriptionPackage{}, false
}
