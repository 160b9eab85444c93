package app

// Product catalog of the Wellenwerk booking calendar. Static on purpose:
// product ids change rarely and a config table keeps label resolution and
// exclusion pure functions of their input.

// UnknownSessionType is the label used for product ids missing from the
// catalog.
const UnknownSessionType = "Unbekannter Session-Typ"

var sessionTypes = map[string]string{
	"b56e8b9a-548a-442c-abfe-5f03ecc7d789": "Beginner Surf Session (mit Haltestange)",
	"8690f2d5-6147-4d05-9f67-11503345775d": "Intermediate Surf Session",
	"69deb84b-c399-4a04-96ae-61834bd0830a": "Surfnight",
	"c56088da-2aa3-4b75-a94b-bebe69107904": "Kids Surf & Plantsch Session",
	"31e7c3ee-7025-4919-b321-d0c6300d885e": "Beginner Surfkurs",
	"06ce1656-58d5-49e4-9273-8a51b311ba39": "Trainingssession (Advanced/Pro)",
	"c07b8b50-d72e-451d-8ff5-7e8e0af1bbf2": "Exklusiv Session",
	"411bd098-dc9d-41b0-869d-1f22b5b4e9b9": "Exklusiv Session",
	"582ba730-f594-4929-9b52-62bcd27bb936": "Wave and Rave",
	"a9c98e05-6f2f-4b16-8c10-5137eff2f73f": "Exklusiv Session",
	"ab115d7f-f0ed-4c3f-810f-fc97b3fe72f5": "Berlin Surf Open 2.0",
	"8763fb79-6809-4387-8d56-9fdf883b1373": "Berlin Surf Open 2.0",
	"214fe50d-3df3-4e99-8b5d-608f1df03126": "Trainingssession (30 Minuten/6 Pax) (Advanced/Pro)",
}

// Products hidden from downstream consumers (exclusive and closed-group
// sessions that never offer public capacity).
var excludedProducts = map[string]struct{}{
	"c07b8b50-d72e-451d-8ff5-7e8e0af1bbf2": {}, // Exclusive session
	"a9c98e05-6f2f-4b16-8c10-5137eff2f73f": {}, // Exclusive session (2)
	"b56e8b9a-548a-442c-abfe-5f03ecc7d789": {}, // Beginner session
	"31e7c3ee-7025-4919-b321-d0c6300d885e": {}, // Beginner session (2)
	"c56088da-2aa3-4b75-a94b-bebe69107904": {}, // Kids session
}

// SessionTypeLabel resolves the display label for a product id.
func SessionTypeLabel(productID string) string {
	if label, ok := sessionTypes[productID]; ok {
		return label
	}
	return UnknownSessionType
}

// IsExcluded reports whether a product id is hidden from tracking.
func IsExcluded(productID string) bool {
	_, ok := excludedProducts[productID]
	return ok
}
