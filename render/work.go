package render

import (
	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/record"
)

// RenderWorkExperience 为每段经历输出标题行、日期区间、可选的摘要以及
// 每条 highlight 一行。showDates、showHighlights 为 false 时隐藏对应行。
func RenderWorkExperience(source string, settings Settings, rec record.Value, style Style) Node {
	jobs := binding.Resolve(source, rec)
	if jobs.Kind() != record.KindSeq || jobs.Len() == 0 {
		return nil
	}
	showDates := settings.Bool("showDates", true)
	showHighlights := settings.Bool("showHighlights", true)
	size := settings.size(style.FontSize)

	children := make([]Node, 0, jobs.Len())
	for _, job := range jobs.Items() {
		lines := []Node{&Text{
			Content: job.Field("position").Text() + " @ " + job.Field("name").Text(),
			Size:    size,
			Weight:  Bold,
			Color:   style.Color,
		}}
		if showDates {
			start := job.Field("startDate").Text()
			end := job.Field("endDate").Text()
			if start != "" || end != "" {
				if end == "" {
					end = style.CurrentMarker
				}
				lines = append(lines, &Text{Content: start + " - " + end, Size: size, Weight: Light, Color: style.MutedColor})
			}
		}
		if summary := job.Field("summary").Text(); summary != "" {
			lines = append(lines, &Text{Content: summary, Size: size, Weight: Light, Color: style.Color})
		}
		if showHighlights {
			for _, h := range job.Field("highlights").Items() {
				if text := h.Text(); text != "" {
					lines = append(lines, &Text{Content: style.Bullet + text, Size: size, Weight: Light, Color: style.Color})
				}
			}
		}
		children = append(children, &Stack{Children: lines})
	}
	return &Stack{Children: children, Gap: style.JobGap, Padding: style.SectionPadding}
}
