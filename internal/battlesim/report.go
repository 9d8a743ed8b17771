package battlesim

import (
	"fmt"
	"html"
	"strings"
)

// Markdown renders the sweep result as a report for balancing review.
func Markdown(result *SweepResult) string {
	var b strings.Builder

	b.WriteString("# Combat Feel Simulation Report\n\n")
	fmt.Fprintf(&b, "- Settings: `%s`\n", result.SettingsLabel)
	fmt.Fprintf(&b, "- Scenarios: %d\n", result.ScenarioCount)
	fmt.Fprintf(&b, "- Runs per scenario (seeds): %d\n", result.Seeds)
	fmt.Fprintf(&b, "- Run duration: %.2fs\n", result.Duration)
	fmt.Fprintf(&b, "- Physics dt: %.5fs\n\n", result.DT)

	b.WriteString("## Top Scenarios\n\n")
	b.WriteString("| Rank | Scenario | Score | Left Win Rate | Collisions/s | Damage/s | Air Ratio | Lead Changes |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|---:|---:|\n")
	for idx, s := range result.TopScenarios {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f%% | %.2f | %.2f | %.2f | %.2f |\n",
			idx+1, s.ScenarioName, s.Score, s.WinRateLeft*100.0,
			s.AvgCollisionsPerSecond, s.AvgDamagePerSecond,
			s.AvgAirRatio, s.AvgLeadChanges)
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	b.WriteString("\n## Profile Multipliers\n\n")
	b.WriteString("| Side | Profile | Radius | Mass | Power | HP | Speed |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")
	seen := map[string]struct{}{}
	for _, s := range result.TopScenarios {
		for _, entry := range []struct {
			side    string
			profile Profile
		}{{"left", s.LeftProfile}, {"right", s.RightProfile}} {
			key := entry.side + ":" + entry.profile.Name
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				entry.side, entry.profile.Name,
				entry.profile.RadiusScale, entry.profile.MassScale,
				entry.profile.PowerScale, entry.profile.HPScale, entry.profile.SpeedScale)
		}
	}

	return strings.TrimSpace(b.String()) + "\n"
}

func metricBar(value, limit float64) string {
	width := 0.0
	if limit > 0 {
		width = min(100.0, max(0.0, value/limit*100.0))
	}
	return fmt.Sprintf(`<div class="bar"><span style="width:%.1f%%"></span></div>`, width)
}

// HTML renders the sweep result as a standalone dark-theme page with
// inline metric bars.
func HTML(result *SweepResult) string {
	top := result.TopScenarios
	maxScore, maxCollision, maxDamage, maxAir, maxLead := 1.0, 1.0, 1.0, 1.0, 1.0
	for _, s := range top {
		maxScore = max(maxScore, s.Score)
		maxCollision = max(maxCollision, s.AvgCollisionsPerSecond)
		maxDamage = max(maxDamage, s.AvgDamagePerSecond)
		maxAir = max(maxAir, s.AvgAirRatio)
		maxLead = max(maxLead, s.AvgLeadChanges)
	}

	var rows strings.Builder
	for rank, s := range top {
		fmt.Fprintf(&rows,
			"<tr><td>%d</td><td>%s</td><td>%.2f%s</td><td>%.2f%s</td><td>%.2f%s</td><td>%.2f%s</td><td>%.2f%s</td></tr>",
			rank+1, html.EscapeString(s.ScenarioName),
			s.Score, metricBar(s.Score, maxScore),
			s.AvgCollisionsPerSecond, metricBar(s.AvgCollisionsPerSecond, maxCollision),
			s.AvgDamagePerSecond, metricBar(s.AvgDamagePerSecond, maxDamage),
			s.AvgAirRatio, metricBar(s.AvgAirRatio, maxAir),
			s.AvgLeadChanges, metricBar(s.AvgLeadChanges, maxLead))
	}

	var recs strings.Builder
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&recs, "<li>%s</li>", html.EscapeString(rec))
	}

	var b strings.Builder
	b.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<title>Combat Feel Report</title><style>`)
	b.WriteString(`:root{--bg:#0d1117;--panel:#161b22;--line:#2a3544;--text:#e6edf3;--muted:#94a3b8;--accent:#22c55e;}`)
	b.WriteString(`body{margin:0;font-family:Segoe UI,Arial,sans-serif;background:radial-gradient(circle at 20% 0%,#1a2330 0,#0d1117 45%);color:var(--text);}`)
	b.WriteString(`.wrap{max-width:1100px;margin:24px auto;padding:0 16px;}`)
	b.WriteString(`.card{background:var(--panel);border:1px solid var(--line);border-radius:12px;padding:16px;margin-bottom:14px;}`)
	b.WriteString(`h1,h2{margin:0 0 10px 0;}`)
	b.WriteString(`.meta{display:grid;grid-template-columns:repeat(auto-fit,minmax(170px,1fr));gap:10px;}`)
	b.WriteString(`.meta div{background:#0f1520;border:1px solid var(--line);border-radius:8px;padding:8px 10px;}`)
	b.WriteString(`.meta b{display:block;color:var(--muted);font-weight:600;font-size:12px;}`)
	b.WriteString(`.meta span{font-size:15px;}`)
	b.WriteString(`table{width:100%;border-collapse:collapse;font-size:14px;}`)
	b.WriteString(`th,td{padding:8px;border-bottom:1px solid var(--line);vertical-align:top;}`)
	b.WriteString(`th{color:var(--muted);text-align:left;}`)
	b.WriteString(`.bar{height:6px;background:#1f2937;border-radius:6px;overflow:hidden;margin-top:4px;}`)
	b.WriteString(`.bar span{display:block;height:100%;background:linear-gradient(90deg,#22c55e,#16a34a);}`)
	b.WriteString(`ul{margin:0;padding-left:20px;}`)
	b.WriteString(`</style></head><body><div class="wrap">`)
	b.WriteString(`<div class="card"><h1>Combat Feel Simulation Report</h1><div class="meta">`)
	fmt.Fprintf(&b, `<div><b>Settings</b><span>%s</span></div>`, html.EscapeString(result.SettingsLabel))
	fmt.Fprintf(&b, `<div><b>Scenarios</b><span>%d</span></div>`, result.ScenarioCount)
	fmt.Fprintf(&b, `<div><b>Runs per scenario</b><span>%d</span></div>`, result.Seeds)
	fmt.Fprintf(&b, `<div><b>Run duration</b><span>%.2fs</span></div>`, result.Duration)
	fmt.Fprintf(&b, `<div><b>Physics dt</b><span>%.5fs</span></div>`, result.DT)
	b.WriteString(`</div></div>`)
	b.WriteString(`<div class="card"><h2>Top Scenarios</h2><table><thead><tr>`)
	b.WriteString(`<th>Rank</th><th>Scenario</th><th>Score</th><th>Collisions/s</th><th>Damage/s</th><th>Air Ratio</th><th>Lead Changes</th>`)
	fmt.Fprintf(&b, `</tr></thead><tbody>%s</tbody></table></div>`, rows.String())
	fmt.Fprintf(&b, `<div class="card"><h2>Recommendations</h2><ul>%s</ul></div>`, recs.String())
	b.WriteString(`</div></body></html>`)
	return b.String()
}
