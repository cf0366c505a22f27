package reservation

// Price ladder by party size, in currency units. Parties of five or more
// pay the flat top tier.
const (
	priceSolo     = 50
	priceCouple   = 100
	priceSmall    = 150
	priceMedium   = 200
	priceTopTier  = 250
	topTierCutoff = 5
)

// PriceFor maps a party size to its price tier. Total over partySize >= 1;
// smaller values are a caller contract violation, not handled here.
func PriceFor(partySize int) int {
	if partySize >= topTierCutoff {
		return priceTopTier
	}
	switch partySize {
	case 1:
		return priceSolo
	case 2:
		return priceCouple
	case 3:
		return priceSmall
	default:
		return priceMedium
	}
}

const topTierCheckoutURL = "https://checkout.chapa.co/checkout/payment/r51mp0b2e"

// checkoutURLs is the fixed price -> sandbox checkout link table handed to
// the external payment collaborator as an opaque redirect target.
var checkoutURLs = map[int]string{
	priceSolo:    "https://checkout.chapa.co/checkout/payment/x93kd21aa",
	priceCouple:  "https://checkout.chapa.co/checkout/payment/pq27j8c1f",
	priceSmall:   "https://checkout.chapa.co/checkout/payment/oda8f4ce8",
	priceMedium:  "https://checkout.chapa.co/checkout/payment/zt64n9d37",
	priceTopTier: topTierCheckoutURL,
}

// PaymentDestinationFor looks up the checkout link for a price. A price
// outside the ladder falls back to the top-tier link.
func PaymentDestinationFor(price int) string {
	if u, ok := checkoutURLs[price]; ok {
		return u
	}
	return topTierCheckoutURL
}
