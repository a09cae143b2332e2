package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/user/gifcast/pkg/config"
)

// parseOverlay parses an overlay flag value of the form "TEXT@X,Y" where X
// and Y are percentages of the frame dimensions. The last '@' separates the
// text from the position so captions may contain '@' themselves.
func parseOverlay(spec string) (config.OverlayConfig, error) {
	at := strings.LastIndex(spec, "@")
	if at <= 0 || at == len(spec)-1 {
		return config.OverlayConfig{}, fmt.Errorf(l10n.T("invalid overlay %q, expected TEXT@X,Y"), spec)
	}

	text := spec[:at]
	pos := strings.Split(spec[at+1:], ",")
	if len(pos) != 2 {
		return config.OverlayConfig{}, fmt.Errorf(l10n.T("invalid overlay %q, expected TEXT@X,Y"), spec)
	}

	x, errX := strconv.ParseFloat(strings.TrimSpace(pos[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(pos[1]), 64)
	if errX != nil || errY != nil {
		return config.OverlayConfig{}, fmt.Errorf(l10n.T("invalid overlay position in %q"), spec)
	}
	if x < 0 || x > 100 || y < 0 || y > 100 {
		return config.OverlayConfig{}, fmt.Errorf(l10n.T("overlay position out of range in %q"), spec)
	}

	return config.OverlayConfig{
		Text:     text,
		XPercent: x,
		YPercent: y,
	}, nil
}
