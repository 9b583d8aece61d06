package workouts

// Sub-category tables map human training-purpose keys to the filename
// prefix codes used by the 80/20 workout collection. Static data, one
// table per sport; keys are matched against user input by bidirectional
// case-insensitive substring containment.
var subCategoryTables = map[string]map[string][]string{
	"Bike": {
		"aerobic":            {"CAe", "CAP"},
		"anaerobic":          {"CAI", "CAn"},
		"accelerations":      {"CA1", "CA2", "CA3", "CA4", "CA5", "CA6", "CA7", "CA8", "CA9"},
		"cruise":             {"CCI"},
		"critical_power":     {"CCP"},
		"depletion":          {"CD"},
		"descending":         {"CDI"},
		"foundation":         {"CF"},
		"fast_finish":        {"CFA", "CFF"},
		"force":              {"CFo"},
		"mixed":              {"CIM", "CMI"},
		"sprint":             {"CIR"},
		"progression":        {"CPI"},
		"power_repetitions":  {"CPR"},
		"recovery":           {"CRe"},
		"speed_play":         {"CSP"},
		"speed_repetitions":  {"CSR"},
		"steady_state":       {"CSS"},
		"tempo":              {"CT"},
		"threshold":          {"CTR"},
		"time_trial":         {"CTT"},
		"variable_intensity": {"CVI"},
		"vo2max":             {"CVO2M"},
		"endurance":          {"EC"},
		"easy":               {"EZC"},
		"lactate":            {"LIC"},
		"over_under":         {"OUC"},
	},
	"Run": {
		"aerobic":               {"RAe"},
		"anaerobic":             {"RAI", "RAn"},
		"accelerations":         {"RA"},
		"cruise":                {"RCI"},
		"critical_velocity":     {"RCV"},
		"depletion":             {"RD"},
		"descending":            {"RDI"},
		"foundation":            {"RF"},
		"fast_finish":           {"RFF"},
		"fartlek":               {"RFR"},
		"half_marathon":         {"RHM"},
		"heart_rate":            {"RHR"},
		"long":                  {"RL"},
		"long_speedplay":        {"RLS"},
		"mixed":                 {"RMI"},
		"marathon_pace":         {"RMP"},
		"progression":           {"RP"},
		"progression_fartlek":   {"RPF"},
		"progression_intervals": {"RPI"},
		"recovery":              {"RRe"},
		"short_intervals":       {"RSI"},
		"speed_play":            {"RSP"},
		"steady_state":          {"RSS"},
		"tempo":                 {"RT"},
		"time_trial":            {"RTT"},
		"variable_intensity":    {"RVI"},
		"vo2max":                {"RVO2M"},
		"cross_training":        {"RXT"},
		"5k":                    {"R5K"},
		"10k":                   {"R10K"},
		"easy":                  {"ER"},
		"easy_fast_finish":      {"ERFF"},
		"long_finish":           {"LFR"},
		"long_intervals":        {"LIR"},
		"outdoor":               {"OUR"},
		"warmup":                {"WR"},
	},
	"Swim": {
		"aerobic":             {"SAe"},
		"broken_swims":        {"SBB"},
		"cruise":              {"SCI"},
		"critical_pace":       {"SCP"},
		"endurance":           {"SE"},
		"easy_endurance":      {"SEE"},
		"endurance_recovery":  {"SER"},
		"foundation":          {"SF"},
		"short_intervals":     {"SIS"},
		"lactate":             {"SLI"},
		"mixed":               {"SMI"},
		"recovery":            {"SRe"},
		"short_sprint":        {"SSI"},
		"speed_play":          {"SSP"},
		"tempo":               {"ST"},
		"threshold_intervals": {"STI"},
		"time_trial":          {"STT"},
	},
}
