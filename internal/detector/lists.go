package detector

// Reference data for the catalogue. Order matters: findings follow it.
var (
	unsafeTLDs = []string{
		".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".zip", ".mov", ".click", ".buzz", ".rest",
	}

	brands = []string{
		"paypal", "google", "apple", "amazon", "microsoft", "netflix", "facebook", "instagram",
	}

	keywordCluster = []string{"login", "verify"}

	phishingKeywords = []string{
		"login", "secure", "verify", "account", "update", "signin", "banking", "confirm", "password", "wallet", "unlock",
	}

	deliveryWords = []string{
		"parcel", "delivery", "shipment", "tracking", "courier", "postage",
	}

	digitSubstitutions = []struct {
		digit  rune
		letter rune
	}{
		{'0', 'o'},
		{'1', 'l'},
		{'3', 'e'},
		{'5', 's'},
		{'7', 't'},
	}
)

const (
	hyphenLimit      = 4
	maxBrandEdits    = 2
	longURLThreshold = 80
	maxHostDots      = 3
)
