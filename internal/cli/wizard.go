package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"smart_scout/internal/config"
)

func RunConfigWizard() error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Config wizard (press Enter to accept defaults)")

	path := promptString(reader, "Config file path", "config.yaml")
	guidelines := promptString(reader, "Guidelines (comma-separated)", "anc,base,immunizations,trust")
	outputDir := promptString(reader, "Output dir (optional)", "")
	save := promptBool(reader, "Save reports (true/false)", false)
	timeout := promptInt(reader, "Fetch timeout seconds", 10)
	historyDB := promptString(reader, "History db path (optional)", "")
	fhirDemo := promptBool(reader, "Run FHIR demo (true/false)", false)

	cfg := config.Config{
		OutputDir:      strings.TrimSpace(outputDir),
		Save:           save,
		TimeoutSeconds: timeout,
		HistoryDB:      strings.TrimSpace(historyDB),
	}
	cfg.FHIR.Demo = fhirDemo
	for _, id := range strings.Split(guidelines, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Guidelines = append(cfg.Guidelines, id)
		}
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func promptString(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptInt(reader *bufio.Reader, label string, def int) int {
	fmt.Printf("%s [%d]: ", label, def)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	var val int
	if _, err := fmt.Sscanf(line, "%d", &val); err != nil {
		return def
	}
	return val
}

func promptBool(reader *bufio.Reader, label string, def bool) bool {
	defStr := "false"
	if def {
		defStr = "true"
	}
	fmt.Printf("%s [%s]: ", label, defStr)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return def
	}
	return line == "true" || line == "1" || line == "yes" || line == "y"
}
