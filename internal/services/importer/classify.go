package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Filename classification for operator report files. Providers, contract
// types and report years are all derived from the filename alone; the
// workbook content never carries them.

var (
	datePrefixRe = regexp.MustCompile(`^\d+_`)

	sdpProviderRe   = regexp.MustCompile(`(?i)Servis__SDP_([A-Za-z0-9\s]+)_[a-z]+_\d{8}\.xls$`)
	sdpLegacyRe     = regexp.MustCompile(`(?i)Servis_?_{1,3}SDP_?_{1,3}([A-Za-z0-9\s]+)_`)
	micropaymentRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Servis__MicropaymentMerchantReport_([A-Za-z0-9\s]+)_Apps_\d+__\d+_\d+`),
		regexp.MustCompile(`(?i)Servis__MicropaymentMerchantReport_([A-Za-z0-9\s]+)_Standard_\d+__\d+_\d+`),
		regexp.MustCompile(`(?i)Servis__MicropaymentMerchantReport_([A-Za-z0-9\s]+)_Media_\d+__\d+_\d+`),
	}
	providerCodeRe = regexp.MustCompile(`[A-Za-z0-9]{3,5}`)

	nonAlnumSpaceRe = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)

	sdpContractRe = regexp.MustCompile(`(?i)Servis__SDP_([A-Za-z0-9\s]+)_([a-z]+)_\d{8}\.xls$`)
	yearRe        = regexp.MustCompile(`\d{4}`)
)

// providerAliases folds known spelling variants into a canonical name.
var providerAliases = map[string]string{
	"NTHMEDIA":        "NTH",
	"NTH MEDIA":       "NTH",
	"NTHMEDI":         "NTH",
	"NTH STANDARD":    "NTH",
	"NTH APPS":        "NTH",
	"NTH SAVETOVANJE": "NTH",
}

// NormalizeProviderName canonicalizes a raw provider name: whitespace
// collapsed, punctuation stripped, uppercased, aliases folded. Applying it
// twice yields the same result.
func NormalizeProviderName(raw string) string {
	cleaned := whitespaceRe.ReplaceAllString(raw, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = nonAlnumSpaceRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ToUpper(cleaned)

	if canonical, ok := providerAliases[cleaned]; ok {
		return canonical
	}
	if strings.Contains(cleaned, "NTH") {
		return "NTH"
	}
	return cleaned
}

// ExtractProviderName derives the provider from a report filename. Unmatched
// filenames fall back to the first short alphanumeric run, then to "UNK".
func ExtractProviderName(filename string) string {
	clean := datePrefixRe.ReplaceAllString(filename, "")

	if m := sdpProviderRe.FindStringSubmatch(clean); m != nil {
		return NormalizeProviderName(strings.TrimSpace(m[1]))
	}
	if m := sdpLegacyRe.FindStringSubmatch(filename); m != nil {
		return NormalizeProviderName(strings.TrimSpace(m[1]))
	}
	for _, re := range micropaymentRes {
		if m := re.FindStringSubmatch(filename); m != nil {
			return NormalizeProviderName(strings.TrimSpace(m[1]))
		}
	}
	if m := providerCodeRe.FindString(filename); m != "" {
		return NormalizeProviderName(m)
	}
	return "UNK"
}

// DetectContractType classifies the billing category encoded in the filename.
func DetectContractType(filename string) string {
	clean := datePrefixRe.ReplaceAllString(filename, "")

	if m := sdpContractRe.FindStringSubmatch(clean); m != nil {
		return strings.ToUpper(strings.TrimSpace(m[2]))
	}

	lower := strings.ToLower(clean)
	switch {
	case strings.Contains(lower, "_apps_") || strings.Contains(lower, "app"):
		return "APPS"
	case strings.Contains(lower, "_standard_") || strings.Contains(lower, "standard"):
		return "STANDARD"
	case strings.Contains(lower, "_media_") || strings.Contains(lower, "media"):
		return "MEDIA"
	case strings.Contains(lower, "_commerce_") || strings.Contains(lower, "commerce"):
		return "COMMERCE"
	}

	for _, part := range strings.Split(clean, "_") {
		switch strings.ToLower(part) {
		case "standard":
			return "STANDARD"
		case "commerce":
			return "COMMERCE"
		case "media":
			return "MEDIA"
		case "apps":
			return "APPS"
		}
	}
	return "GENERAL"
}

// ContractDetails is derived from the filename: a contract type plus the
// name the contract is registered under for the provider.
type ContractDetails struct {
	Type string
	Name string
}

// ExtractContractDetails resolves the contract for a report filename.
func ExtractContractDetails(filename string) (ContractDetails, error) {
	clean := datePrefixRe.ReplaceAllString(filename, "")

	if m := sdpContractRe.FindStringSubmatch(clean); m != nil {
		providerName := whitespaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		contractType := strings.ToUpper(strings.TrimSpace(m[2]))
		return ContractDetails{
			Type: contractType,
			Name: strings.ReplaceAll(providerName, " ", "_") + "_" + contractType,
		}, nil
	}

	switch {
	case strings.Contains(clean, "_Apps_"):
		return ContractDetails{Type: "APPS", Name: "APPS"}, nil
	case strings.Contains(clean, "_Media_"):
		return ContractDetails{Type: "MEDIA", Name: "MEDIA"}, nil
	case strings.Contains(clean, "_Standard_"):
		return ContractDetails{Type: "STANDARD", Name: "STANDARD"}, nil
	case strings.Contains(clean, "_Commerce_"):
		return ContractDetails{Type: "COMMERCE", Name: "COMMERCE"}, nil
	}

	parts := strings.Split(clean, "_")
	if len(parts) >= 5 {
		providerName := strings.TrimSpace(parts[2])
		contractType := strings.ToUpper(strings.TrimSpace(parts[3]))
		if providerName != "" && contractType != "" {
			return ContractDetails{
				Type: contractType,
				Name: strings.ReplaceAll(providerName, " ", "_") + "_" + contractType,
			}, nil
		}
	}

	return ContractDetails{}, fmt.Errorf("unrecognized contract format: %s", filename)
}

// ContractNumber builds a contract number like VAS-MEDIA-483921 from the
// type and the current clock.
func ContractNumber(prefix, contractType string, now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	if contractType == "" {
		return prefix + "-" + millis
	}
	return prefix + "-" + contractType + "-" + millis
}

// ExtractYear pulls the report year out of the filename, falling back to
// the current year when no plausible one is present.
func ExtractYear(filename string, now time.Time) string {
	if m := yearRe.FindString(filename); m != "" {
		if y, err := strconv.Atoi(m); err == nil && y >= 2000 && y <= now.Year()+1 {
			return m
		}
	}
	return strconv.Itoa(now.Year())
}

// Parking filename handling. Parking reports come from city operators, so
// names keep their letter case and diacritics.

type parkingPattern struct {
	re        *regexp.Regexp
	transform func(string) string
}

var parkingPatterns = []parkingPattern{
	{regexp.MustCompile(`Servis__MicropaymentMerchantReport_SDP_mParking_([A-Za-zđĐčČćĆžŽšŠ]+)(?:_\d+_\d+|_.+?)?__`), capitalizeUnderscored},
	{regexp.MustCompile(`SDP_mParking_([A-Za-zđĐčČćĆžŽšŠ]+)(?:_\d+_\d+|_.+?)?__`), capitalizeUnderscored},
	{regexp.MustCompile(`_mParking_([A-Za-z0-9]+)_\d+__\d+_`), nil},
	{regexp.MustCompile(`Servis__MicropaymentMerchantReport_([A-Za-z0-9]+)__\d+_`), nil},
	{regexp.MustCompile(`Parking_([A-Za-z0-9]+)_\d{8}`), nil},
	{regexp.MustCompile(`^([A-Za-z0-9]+)_mParking_`), nil},
	{regexp.MustCompile(`^([A-Za-z0-9]+)_Parking_`), nil},
	{regexp.MustCompile(`^([A-Za-z0-9]+)_Servis_`), nil},
}

var trailingDigitsRe = regexp.MustCompile(`\d{5,}$`)

func capitalizeUnderscored(s string) string {
	return capitalizeWords(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
}

func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}

func sanitizeParkingProvider(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = trailingDigitsRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractParkingProvider derives the city operator name from a parking
// report filename. Patterns are tried in order of specificity.
func ExtractParkingProvider(filename string) string {
	for _, p := range parkingPatterns {
		m := p.re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		provider := m[1]
		if p.transform != nil {
			provider = p.transform(provider)
		} else {
			provider = capitalizeWords(sanitizeParkingProvider(provider))
		}
		if len(provider) >= 2 {
			return provider
		}
	}

	if parts := strings.Split(filename, "_"); len(parts) > 0 && parts[0] != "" {
		return capitalizeWords(parts[0])
	}
	return "Unknown"
}

var sdpParkingPrefixRe = regexp.MustCompile(`(?i)SDP\s*m?Parking\s*`)

// NormalizeParkingName strips the SDP mParking prefix some operators embed
// in their own name.
func NormalizeParkingName(name string) string {
	s := sdpParkingPrefixRe.ReplaceAllString(name, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
