package models

// Descriptor is the static per-slug model configuration, one JSON file per
// slug under the public modelos directory. Never mutated by the service.
type Descriptor struct {
	// Nome is the display name of the model.
	Nome string `json:"nome"`
	// Imagem is the background image asset, relative to /assets/.
	Imagem string `json:"imagem"`
	// PixelID is the tracking pixel the landing page initializes.
	PixelID string `json:"pixel_id"`
	// Plano is the plan code forwarded to token issuance.
	Plano string `json:"plano"`
	// Valor is the plan price forwarded to token issuance.
	Valor float64 `json:"valor"`
}
