package services

// BlockReasons is the shop-floor catalog of known blocking causes. The block
// endpoint also accepts free-text reasons; this list feeds the UI dropdown.
var BlockReasons = []string{
	"Probleme Gravure SAP",
	"Ordre soudure NOK",
	"Qualite Soudure NOK",
	"Wackler",
	"Probleme DP",
	"Serrage",
	"Manque Piece",
	"Probleme Test IR",
	"Probleme SV",
	"Probleme Activation",
	"Manque etiquette",
	"Court circuit",
	"Montabilité",
	"Aspect Visuelle",
}
