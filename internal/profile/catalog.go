package profile

// Countries lists every country the advisory backend recognizes.
var Countries = []string{
	"Bangladesh", "India", "Pakistan", "Nepal", "Sri Lanka", "Malaysia", "Germany",
	"Canada", "Australia", "United Kingdom", "United States", "Turkey", "Italy",
	"Poland", "Sweden", "Finland", "Netherlands", "France", "Saudi Arabia", "UAE",
	"Qatar", "Other",
}

// PhoneCodes lists the selectable international dialing prefixes.
var PhoneCodes = []string{
	"+880", "+91", "+92", "+977", "+94", "+60", "+49", "+1", "+61", "+44",
	"+966", "+971", "+974", "+90", "+39", "+48", "+46", "+358", "+31", "+33",
}

// Currencies lists the selectable budget currencies.
var Currencies = []string{"BDT", "USD", "INR", "EUR", "MYR", "AUD", "CAD", "GBP"}

// EducationLevels lists the selectable education levels.
var EducationLevels = []string{"SSC", "HSC", "O Levels", "A Levels", "Bachelor's", "Master's", "PhD"}

// destinationCount is how many entries of Countries are offered as study
// destinations.
const destinationCount = 12

// Destinations returns the countries offered in the preferred-country picker.
func Destinations() []string {
	out := make([]string, destinationCount)
	copy(out, Countries[:destinationCount])
	return out
}
