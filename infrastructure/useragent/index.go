package useragent

import (
	"fmt"

	"github.com/mileusna/useragent"
)

type UserAgent struct {
	Bot       bool
	OS        string
	OSVersion string
	Device    string
	Name      string
	Mobile    bool
}

func ParseUserAgent(userAgent string) *UserAgent {
	parsed := useragent.Parse(userAgent)
	return &UserAgent{
		Bot:       parsed.Bot,
		OS:        parsed.OS,
		OSVersion: parsed.OSVersion,
		Device:    parsed.Device,
		Name:      parsed.Name,
		Mobile:    parsed.Mobile || parsed.Tablet,
	}
}

// DeviceName is the label shown in audit logs and lockout emails,
// e.g. "Chrome on Windows".
func (ua *UserAgent) DeviceName() string {
	switch {
	case ua.Name != "" && ua.OS != "":
		return fmt.Sprintf("%s on %s", ua.Name, ua.OS)
	case ua.Name != "":
		return ua.Name
	case ua.OS != "":
		return ua.OS
	}
	return "Unknown device"
}
