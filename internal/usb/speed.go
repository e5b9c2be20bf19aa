package usb

import "strings"

// speedInput is the uppercased text a speed rule inspects. Text is the
// concatenation of name, description, caption and service; Compat is the
// joined compatible-id list. Name and Service are also kept separately
// because the SuperSpeed rule looks at them on their own.
type speedInput struct {
	Compat  string
	Text    string
	Name    string
	Service string
}

type speedRule struct {
	version string
	mbps    float64
	match   func(in speedInput) bool
}

// speedRules is evaluated in order and the first match wins. The ordering
// is deliberate: the SuperSpeed check runs first and also inspects the
// compatible-id list and service name, so a device matching several rules
// is labeled by the earliest one. This is a best-effort display label for
// free-text driver strings, not the negotiated speed.
var speedRules = []speedRule{
	{
		version: "3.0", mbps: 5000,
		match: func(in speedInput) bool {
			return strings.Contains(in.Compat, "USB30") ||
				strings.Contains(in.Service, "USBHUB3") ||
				strings.Contains(in.Text, "SUPERSPEED") ||
				strings.Contains(in.Name, "3.0")
		},
	},
	{
		version: "3.1", mbps: 10000,
		match: func(in speedInput) bool {
			return strings.Contains(in.Text, "SUPERSPEEDPLUS")
		},
	},
	{
		version: "2.0", mbps: 480,
		match: func(in speedInput) bool {
			return strings.Contains(in.Text, "HIGH-SPEED") || strings.Contains(in.Text, "HIGHSPEED")
		},
	},
	{
		version: "1.1", mbps: 12,
		match: func(in speedInput) bool {
			return strings.Contains(in.Text, "FULL-SPEED") || strings.Contains(in.Text, "FULLSPEED")
		},
	},
	{
		version: "1.0", mbps: 1.5,
		match: func(in speedInput) bool {
			return strings.Contains(in.Text, "LOW-SPEED") || strings.Contains(in.Text, "LOWSPEED")
		},
	},
}

// InferSpeed maps the free-text strings of a device record to a USB version
// label and nominal speed in Mbit/s. Absent fields are skipped. Returns
// (nil, nil) when no rule matches.
func InferSpeed(compatibleIDs []string, service, name, description, caption string) (version *string, speedMbps *float64) {
	var texts []string
	for _, t := range []string{name, description, caption, service} {
		if t != "" {
			texts = append(texts, t)
		}
	}

	in := speedInput{
		Compat:  strings.ToUpper(strings.Join(compatibleIDs, " ")),
		Text:    strings.ToUpper(strings.Join(texts, " ")),
		Name:    strings.ToUpper(name),
		Service: strings.ToUpper(service),
	}

	for _, rule := range speedRules {
		if rule.match(in) {
			v, s := rule.version, rule.mbps
			return &v, &s
		}
	}
	return nil, nil
}
