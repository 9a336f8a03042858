package tailwind

import (
	"fmt"
	"strconv"
	"strings"
)

// Colors is the subset of the Tailwind palette used by deck themes and cards.
var Colors = map[string]map[string]string{
	"slate": {
		"50": "#f8fafc", "100": "#f1f5f9", "200": "#e2e8f0", "300": "#cbd5e1", "400": "#94a3b8",
		"500": "#64748b", "600": "#475569", "700": "#334155", "800": "#1e293b", "900": "#0f172a",
	},
	"gray": {
		"50": "#f9fafb", "100": "#f3f4f6", "200": "#e5e7eb", "300": "#d1d5db", "400": "#9ca3af",
		"500": "#6b7280", "600": "#4b5563", "700": "#374151", "800": "#1f2937", "900": "#111827",
	},
	"red": {
		"50": "#fef2f2", "100": "#fee2e2", "200": "#fecaca", "300": "#fca5a5", "400": "#f87171",
		"500": "#ef4444", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b", "900": "#7f1d1d",
	},
	"orange": {
		"50": "#fff7ed", "100": "#ffedd5", "200": "#fed7aa", "300": "#fdba74", "400": "#fb923c",
		"500": "#f97316", "600": "#ea580c", "700": "#c2410c", "800": "#9a3412", "900": "#7c2d12",
	},
	"amber": {
		"50": "#fffbeb", "100": "#fef3c7", "200": "#fde68a", "300": "#fcd34d", "400": "#fbbf24",
		"500": "#f59e0b", "600": "#d97706", "700": "#b45309", "800": "#92400e", "900": "#78350f",
	},
	"yellow": {
		"50": "#fefce8", "100": "#fef9c3", "200": "#fef08a", "300": "#fde047", "400": "#facc15",
		"500": "#eab308", "600": "#ca8a04", "700": "#a16207", "800": "#854d0e", "900": "#713f12",
	},
	"green": {
		"50": "#f0fdf4", "100": "#dcfce7", "200": "#bbf7d0", "300": "#86efac", "400": "#4ade80",
		"500": "#22c55e", "600": "#16a34a", "700": "#15803d", "800": "#166534", "900": "#14532d",
	},
	"emerald": {
		"50": "#ecfdf5", "100": "#d1fae5", "200": "#a7f3d0", "300": "#6ee7b7", "400": "#34d399",
		"500": "#10b981", "600": "#059669", "700": "#047857", "800": "#065f46", "900": "#064e3b",
	},
	"teal": {
		"50": "#f0fdfa", "100": "#ccfbf1", "200": "#99f6e4", "300": "#5eead4", "400": "#2dd4bf",
		"500": "#14b8a6", "600": "#0d9488", "700": "#0f766e", "800": "#115e59", "900": "#134e4a",
	},
	"sky": {
		"50": "#f0f9ff", "100": "#e0f2fe", "200": "#bae6fd", "300": "#7dd3fc", "400": "#38bdf8",
		"500": "#0ea5e9", "600": "#0284c7", "700": "#0369a1", "800": "#075985", "900": "#0c4a6e",
	},
	"blue": {
		"50": "#eff6ff", "100": "#dbeafe", "200": "#bfdbfe", "300": "#93c5fd", "400": "#60a5fa",
		"500": "#3b82f6", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af", "900": "#1e3a8a",
	},
	"indigo": {
		"50": "#eef2ff", "100": "#e0e7ff", "200": "#c7d2fe", "300": "#a5b4fc", "400": "#818cf8",
		"500": "#6366f1", "600": "#4f46e5", "700": "#4338ca", "800": "#3730a3", "900": "#312e81",
	},
	"purple": {
		"50": "#faf5ff", "100": "#f3e8ff", "200": "#e9d5ff", "300": "#d8b4fe", "400": "#c084fc",
		"500": "#a855f7", "600": "#9333ea", "700": "#7e22ce", "800": "#6b21a8", "900": "#581c87",
	},
	"pink": {
		"50": "#fdf2f8", "100": "#fce7f3", "200": "#fbcfe8", "300": "#f9a8d4", "400": "#f472b6",
		"500": "#ec4899", "600": "#db2777", "700": "#be185d", "800": "#9d174d", "900": "#831843",
	},
}

var SpecialColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
}

var prefixes = []string{"bg-", "text-", "border-", "fill-", "stroke-"}

// ParseColor resolves a colour reference to a lower case "#rrggbb" value.
// Accepted forms:
//   - "#003366" or "003366"
//   - "rgb(0, 51, 102)"
//   - "blue-700", "bg-blue-700", "blue" (500 shade)
//   - "black", "white"
func ParseColor(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty color")
	}

	if strings.HasPrefix(ref, "rgb(") && strings.HasSuffix(ref, ")") {
		return parseRGB(ref)
	}

	if hex, ok := normalizeHex(ref); ok {
		return hex, nil
	}

	name := ref
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}

	if color, ok := SpecialColors[name]; ok {
		return color, nil
	}

	base, shade, found := strings.Cut(name, "-")
	if !found {
		shade = "500"
	}
	shades, ok := Colors[base]
	if !ok {
		return "", fmt.Errorf("unknown color '%s'", ref)
	}
	color, ok := shades[shade]
	if !ok {
		return "", fmt.Errorf("invalid shade '%s' for color '%s'", shade, base)
	}
	return color, nil
}

// Color is ParseColor that falls back to black for unknown references.
func Color(ref string) string {
	hex, err := ParseColor(ref)
	if err != nil {
		return SpecialColors["black"]
	}
	return hex
}

// ARGB converts a colour reference to the opaque "FFRRGGBB" form used by
// presentation fills and fonts.
func ARGB(ref string) string {
	return "FF" + strings.ToUpper(strings.TrimPrefix(Color(ref), "#"))
}

// Lighten mixes the colour with white, amount in [0,1].
func Lighten(ref string, amount float64) string {
	r, g, b := RGB(ref)
	mix := func(c uint8) uint8 {
		return uint8(float64(c) + (255-float64(c))*amount)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(r), mix(g), mix(b))
}

// RGB returns the colour components of a reference.
func RGB(ref string) (uint8, uint8, uint8) {
	hex := strings.TrimPrefix(Color(ref), "#")
	v, _ := strconv.ParseUint(hex, 16, 32)
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func normalizeHex(s string) (string, bool) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToLower(hex), true
}

func parseRGB(s string) (string, error) {
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid rgb color '%s'", s)
	}
	var c [3]uint64
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return "", fmt.Errorf("invalid rgb component '%s' in '%s'", p, s)
		}
		c[i] = v
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]), nil
}
