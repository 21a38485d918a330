package ui

import (
	"fmt"
	"net/url"

	"HandWash/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// HowToPanel 静态的洗手步骤说明
type HowToPanel struct {
	container *fyne.Container
	image     *canvas.Image
	steps     []*widget.Label
	links     []*widget.Hyperlink
}

func NewHowToPanel(cfg config.HowToConfig, soundCredit string, logger *zap.Logger) *HowToPanel {
	p := &HowToPanel{}

	p.image = canvas.NewImageFromFile(cfg.ImagePath)
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(240, 240))

	title := widget.NewLabelWithStyle("How to wash your hands", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	items := container.NewVBox()
	for i, step := range cfg.Steps {
		label := widget.NewLabel(fmt.Sprintf("%d. %s", i+1, step))
		label.Wrapping = fyne.TextWrapWord
		p.steps = append(p.steps, label)
		items.Add(label)
	}

	links := container.NewHBox()
	for _, l := range []struct{ text, raw string }{
		{"WHO guide", cfg.GuideURL},
		{"Sound", soundCredit},
	} {
		if l.raw == "" {
			continue
		}
		u, err := url.Parse(l.raw)
		if err != nil {
			logger.Warn("invalid link", zap.String("url", l.raw), zap.Error(err))
			continue
		}
		link := widget.NewHyperlink(l.text, u)
		p.links = append(p.links, link)
		links.Add(link)
	}

	p.container = container.NewVBox(
		title,
		p.image,
		items,
		container.NewCenter(links),
	)
	return p
}

func (p *HowToPanel) Container() *fyne.Container {
	return p.container
}
