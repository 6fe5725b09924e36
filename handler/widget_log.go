package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// storeWidgetLog writes params of all open widgets to the widget log file.
func (h *Handler) storeWidgetLog() error {
	if h.config.widgetLog == "" {
		return nil
	}

	var params []*WidgetParams
	for _, e := range h.GetWidgets(nil) {
		params = append(params, e.params)
	}

	b, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	file, err := os.Create(h.config.widgetLog)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}

	return nil
}

// restoreWidgetLog recreates widgets from the widget log file.
func (h *Handler) restoreWidgetLog() error {
	if h.config.widgetLog == "" {
		return nil
	}

	file, err := os.Open(h.config.widgetLog)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	var params []*WidgetParams

	err = json.NewDecoder(file).Decode(&params)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	var errs []error
	for _, p := range params {
		if p == nil {
			continue
		}
		if _, err := h.CreateWidget(p); err != nil {
			errs = append(errs, fmt.Errorf("h.CreateWidget(%s): %w", p.Type, err))
		}
	}

	return errors.Join(errs...)
}
