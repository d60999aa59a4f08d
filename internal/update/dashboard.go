package update

import (
	"github.com/sandeepkv93/contexttasks/internal/stats"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

func (m Model) renderDashboard() string {
	summary := stats.Summarize(m.Stats, m.now(), m.opts.Location)

	shares := make([]views.ShareData, 0, len(summary.Contexts))
	for _, c := range summary.Contexts {
		shares = append(shares, views.ShareData{
			Label:   c.Context.Label(),
			Count:   c.Count,
			Percent: int(c.Percent + 0.5),
			BarView: m.shareProgress.ViewAs(c.Percent / 100),
		})
	}
	days := make([]views.DayData, 0, len(summary.LastWeek))
	for _, d := range summary.LastWeek {
		days = append(days, views.DayData{
			Label:     d.Weekday,
			Count:     d.Count,
			Intensity: int(d.Intensity),
		})
	}
	hours := make([]views.HourData, 0, len(summary.PeakHours))
	for _, h := range summary.PeakHours {
		hours = append(hours, views.HourData{Label: h.Label, Count: h.Count})
	}

	return views.RenderDashboardPanel(views.DashboardPanelData{
		Total:     summary.Total,
		Shares:    shares,
		Days:      days,
		PeakHours: hours,
	})
}
