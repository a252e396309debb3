package models

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Schema tooling.

GENERATE_MODELS=true migrates every model, installs the increment_views
function used by the Journal read path, prints the column report and writes
gorm/gen query helpers to ./generated.

GENERATE_COLUMN_REPORT=true only prints the report:

	=== COLUMN MISMATCH REPORT ===
	--- Table: posts ---
	Found 1 columns not accounted for in model:
	  - legacy_author
*/

// incrementViewsFunction backs PostRepo.IncrementViews.
const incrementViewsFunction = `
CREATE OR REPLACE FUNCTION increment_views(post_id uuid)
RETURNS void
LANGUAGE sql
AS $$
	UPDATE posts SET views = views + 1 WHERE id = post_id;
$$`

// tableModels maps each table to the struct that owns it.
var tableModels = map[string]interface{}{
	"posts":               Post{},
	"categories":          Category{},
	"tags":                Tag{},
	"post_tags":           PostTag{},
	"gallery_images":      GalleryImage{},
	"contact_submissions": ContactSubmission{},
	"ai_logs":             AILog{},
}

func GenerateModels(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	fmt.Println("Starting database migration...")

	if err := migrateDB.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		fmt.Printf("Error setting up post_tags join table: %v\n", err)
		os.Exit(1)
	}

	if err := migrateDB.AutoMigrate(
		&Category{},
		&Tag{},
		&Post{},
		&PostTag{},
		&GalleryImage{},
		&ContactSubmission{},
		&AILog{},
	); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}

	if err := migrateDB.Exec(incrementViewsFunction).Error; err != nil {
		fmt.Printf("Error creating increment_views function: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database migration completed successfully!")

	GenerateColumnMismatchReport(db)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(
		Post{},
		Category{},
		Tag{},
		PostTag{},
		GalleryImage{},
		ContactSubmission{},
		AILog{},
	)
	g.Execute()
	fmt.Println("Model generation complete!")
}

// GenerateColumnMismatchReport prints, per table, the database columns no model field maps to.
func GenerateColumnMismatchReport(db *gorm.DB) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, tableName := range sortedTableNames() {
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Printf("Table does not exist yet (will be created during migration)\n")
			} else {
				fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, modelColumns(tableModels[tableName]))
		if len(mismatches) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
}

// GenerateColumnMismatchReportStandalone generates a report without running migrations
func GenerateColumnMismatchReportStandalone(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	GenerateColumnMismatchReport(db)
}

func sortedTableNames() []string {
	names := make([]string, 0, len(tableModels))
	for name := range tableModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	if len(columns) == 0 {
		var tableExists bool
		tableQuery := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = CURRENT_SCHEMA()
				AND table_name = ?
			)
		`
		if err := db.Raw(tableQuery, tableName).Scan(&tableExists).Error; err != nil {
			return nil, fmt.Errorf("error checking if table %s exists: %w", tableName, err)
		}
		if !tableExists {
			return nil, fmt.Errorf("table %s does not exist", tableName)
		}
	}

	return columns, nil
}

// modelColumns lists the column: names declared in a model's gorm tags.
func modelColumns(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if columnName := extractColumnNameFromGormTag(field.Tag.Get("gorm")); columnName != "" {
			fields = append(fields, columnName)
		}
	}

	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
