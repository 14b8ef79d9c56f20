package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
)

func convertGeoJSONToGOB(inputPath, outputPath string) error {
	segments, err := preprocessing.LoadRoadsFromGeoJSON(inputPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", outputPath, err)
	}

	gobFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create GOB file %s: %w", outputPath, err)
	}
	defer gobFile.Close()

	if err := preprocessing.WriteRoadsGob(gobFile, inputPath, segments); err != nil {
		return fmt.Errorf("failed to encode GOB to %s: %w", outputPath, err)
	}

	g := routing.BuildGraph(segments)
	fmt.Printf("Successfully converted %s to %s\n", inputPath, outputPath)
	fmt.Printf("Segments: %d, Nodes: %d, Edges: %d\n", len(segments), g.NodeCount(), g.EdgeCount())

	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run geojson_to_gob.go <input_geojson_file> [output_gob_file]")
		os.Exit(1)
	}

	inputPath := os.Args[1]

	var outputPath string
	if len(os.Args) > 2 {
		outputPath = os.Args[2]
	} else {
		ext := filepath.Ext(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		outputPath = filepath.Join(filepath.Dir(inputPath), base+".gob")
	}

	if err := convertGeoJSONToGOB(inputPath, outputPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
