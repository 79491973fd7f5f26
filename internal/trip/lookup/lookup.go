// Package lookup holds the static display-name and currency-zone tables.
// The maps are read-only after package initialization and must never be
// mutated at runtime.
package lookup

import "strings"

// UnknownAirline is the display name for an offer with no carrier code.
const UnknownAirline = "알 수 없음"

var airlineNames = map[string]string{
	"KE": "대한항공",
	"OZ": "아시아나항공",
	"7C": "제주항공",
	"TW": "티웨이항공",
	"LJ": "진에어",
	"BX": "에어부산",
	"ZE": "이스타항공",
	"RS": "플라이강원",
	"4V": "에어로케이",
	"JL": "일본항공",
	"NH": "전일본공수",
	"TG": "타이항공",
	"SQ": "싱가포르항공",
	"CX": "캐세이퍼시픽",
	"BR": "에바항공",
	"CI": "중화항공",
	"VN": "베트남항공",
	"PR": "필리핀항공",
	"5J": "세부퍼시픽",
	"AA": "아메리칸항공",
	"DL": "델타항공",
	"UA": "유나이티드항공",
	"LH": "루프트한자",
	"AF": "에어프랑스",
	"BA": "영국항공",
	"KL": "KLM",
	"EK": "에미레이트항공",
	"QR": "카타르항공",
	"TK": "터키항공",
}

type city struct {
	korean  string
	english string
}

var airportCities = map[string]city{
	// Japan
	"NRT": {"도쿄", "Tokyo"},
	"HND": {"도쿄", "Tokyo"},
	"KIX": {"오사카", "Osaka"},
	"CTS": {"삿포로", "Sapporo"},
	"FUK": {"후쿠오카", "Fukuoka"},
	"NGO": {"나고야", "Nagoya"},
	// Southeast Asia
	"BKK": {"방콕", "Bangkok"},
	"DMK": {"방콕", "Bangkok"},
	"HKT": {"푸켓", "Phuket"},
	"SGN": {"호치민", "Ho Chi Minh City"},
	"HAN": {"하노이", "Hanoi"},
	"DAD": {"다낭", "Da Nang"},
	"MNL": {"마닐라", "Manila"},
	"CEB": {"세부", "Cebu"},
	"SIN": {"싱가포르", "Singapore"},
	"KUL": {"쿠알라룸푸르", "Kuala Lumpur"},
	"DPS": {"발리", "Bali"},
	// Greater China
	"PEK": {"베이징", "Beijing"},
	"PVG": {"상하이", "Shanghai"},
	"TAO": {"칭다오", "Qingdao"},
	"HKG": {"홍콩", "Hong Kong"},
	"MFM": {"마카오", "Macau"},
	"TPE": {"타이베이", "Taipei"},
	// Long haul
	"DXB": {"두바이", "Dubai"},
	"IST": {"이스탄불", "Istanbul"},
	"LHR": {"런던", "London"},
	"CDG": {"파리", "Paris"},
	"FRA": {"프랑크푸르트", "Frankfurt"},
	"JFK": {"뉴욕", "New York"},
	"LAX": {"로스앤젤레스", "Los Angeles"},
	"SYD": {"시드니", "Sydney"},
	// Domestic
	"ICN": {"서울", "Seoul"},
	"GMP": {"서울", "Seoul"},
	"CJU": {"제주", "Jeju"},
	"PUS": {"부산", "Busan"},
}

// Airports whose destination converts into a non-default currency. Every
// other airport falls back to USD.
var currencyZones = map[string]string{
	"NRT": "JPY",
	"HND": "JPY",
	"KIX": "JPY",
}

// DefaultCurrency is the conversion target for unrecognized destinations.
const DefaultCurrency = "USD"

// AirlineName resolves a carrier code to its display name. Unresolved codes
// fall back to the raw code; an empty code resolves to UnknownAirline.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	if code == "" {
		return UnknownAirline
	}
	return code
}

// CityName resolves an airport code to a "한글(English)" city label. Unmapped
// codes fall back to the uppercased code itself, or "N/A" when empty.
func CityName(airport string) string {
	code := strings.ToUpper(strings.TrimSpace(airport))
	if c, ok := airportCities[code]; ok {
		return c.korean + "(" + c.english + ")"
	}
	if code == "" {
		return "N/A"
	}
	return code
}

// CurrencyZone resolves a destination airport to its conversion currency.
func CurrencyZone(airport string) string {
	if cur, ok := currencyZones[strings.ToUpper(strings.TrimSpace(airport))]; ok {
		return cur
	}
	return DefaultCurrency
}
