package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/candle-lamp/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"powerString": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
	"powerClass": func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	},
	"swatch": func(l status.LampState) template.CSS {
		if !l.Power {
			return "background: #222;"
		}
		// CSS hsl() lightness runs 0-100 with 50 as the pure color;
		// halve the brightness so 100% maps to a saturated flame.
		return template.CSS(fmt.Sprintf("background: hsl(%.0f, %.0f%%, %.0f%%);",
			l.Hue, l.Saturation, l.Brightness/2))
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Candle Lamp</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.swatch { width: 100%; height: 48px; border-radius: 6px; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>Candle Lamp</h1>
<div class="swatch" style="{{swatch .Lamp}}"></div>
<table>
<tr><th>Power</th><td class="{{powerClass .Lamp.Power}}">{{powerString .Lamp.Power}}</td></tr>
<tr><th>Hue</th><td>{{printf "%.0f" .Lamp.Hue}}&deg;</td></tr>
<tr><th>Saturation</th><td>{{printf "%.0f" .Lamp.Saturation}}%</td></tr>
<tr><th>Brightness</th><td>{{printf "%.0f" .Lamp.Brightness}}%</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}} ({{.Config.Broker}})</td></tr>
<tr><th>Toggles</th><td>{{.Counts.Toggles}}</td></tr>
<tr><th>Maintenance triggers</th><td>{{.Counts.Maintenance}}</td></tr>
<tr><th>Remote commands</th><td>{{.Counts.Commands}}</td></tr>
<tr><th>LEDs per strip</th><td>{{.Config.LEDCount}}</td></tr>
<tr><th>Frame / poll</th><td>{{.Config.FrameMs}}ms / {{.Config.PollMs}}ms</td></tr>
</table>
<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

// renderHTML writes the status page for the given snapshot.
func renderHTML(w io.Writer, snap status.Snapshot) {
	// Ignore template errors; the page is best-effort diagnostics.
	_ = indexTmpl.Execute(w, snap)
}
