package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/G-Node/formtonic/formtonic"
	"github.com/G-Node/formtonic/formtonic/form"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath, formPath string
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Serve a timesheet form and record the submitted hours",
	}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the web service",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &formtonic.Config{Title: "Timesheet", Port: 3000, DBPath: "./timesheet.db"}
			if configPath != "" {
				var err error
				if config, err = formtonic.ReadConfig(configPath); err != nil {
					return err
				}
			}
			newForm, err := loadForm(formPath)
			if err != nil {
				return err
			}
			srv, err := formtonic.NewService(newForm, recordHours, *config)
			if err != nil {
				return err
			}
			if err := srv.Start(); err != nil {
				return err
			}
			defer srv.Stop()
			srv.WaitForInterrupt()
			return nil
		},
	}
	serve.Flags().StringVarP(&configPath, "config", "c", "", "JSON configuration file")
	serve.Flags().StringVarP(&formPath, "form", "f", "timesheet.yaml", "YAML file describing the form fields")
	cmd.AddCommand(serve)
	return cmd
}

// loadForm reads the field descriptors once and returns a factory that
// builds a fresh form from them for every request.
func loadForm(path string) (formtonic.FormFactory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	descs, err := form.LoadDescriptors(file)
	if err != nil {
		return nil, err
	}
	return func() (*form.Form, error) {
		return form.FromDescriptors(descs, form.NewButton("Save", form.WithButtonType("submit")))
	}, nil
}

func recordHours(values map[string]string) ([]string, error) {
	msgs := make([]string, 0)
	hours := values["hours"]
	h, err := strconv.ParseFloat(hours, 64)
	if err != nil {
		return msgs, fmt.Errorf("hours not a number: %s", err.Error())
	}
	day := values["day"]
	if day == "" {
		day = "today"
	}
	msgs = append(msgs, fmt.Sprintf("Recorded %.2f hours for %s", h, day))
	if values["billable"] == "true" {
		msgs = append(msgs, "Marked as billable")
	}
	log.Printf("Timesheet entry: %v", values)
	return msgs, nil
}
