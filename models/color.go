package models

// ColorAPIColor is the body returned by thecolorapi.com/id.
// Only the fields the resolver reads are modelled.
type ColorAPIColor struct {
	Hex      ColorHex      `json:"hex"`
	RGB      ColorRGB      `json:"rgb"`
	HSL      ColorValue    `json:"hsl"`
	HSV      ColorValue    `json:"hsv"`
	CMYK     ColorValue    `json:"cmyk"`
	Name     ColorName     `json:"name"`
	Contrast ColorContrast `json:"contrast"`
}

type ColorHex struct {
	Value string `json:"value"`
	Clean string `json:"clean"`
}

type ColorRGB struct {
	R     int    `json:"r"`
	G     int    `json:"g"`
	B     int    `json:"b"`
	Value string `json:"value"`
}

type ColorValue struct {
	Value string `json:"value"`
}

type ColorName struct {
	Value           string `json:"value"`
	ClosestNamedHex string `json:"closest_named_hex"`
	ExactMatchName  bool   `json:"exact_match_name"`
	Distance        int    `json:"distance"`
}

type ColorContrast struct {
	Value string `json:"value"`
}
