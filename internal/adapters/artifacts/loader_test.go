package artifacts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/parcast/internal/adapters/artifacts"
	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/internal/domain/regressor"
	"github.com/okian/parcast/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

const modelJSON = `{"kind":"linear","intercept":1,"features":["Hour","Bar_A","Bar_B"],"coefficients":[1,2,3]}`

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

func TestReadTemplate(t *testing.T) {
	Convey("Given template files in several formats", t, func() {
		dir := t.TempDir()
		want := []string{"Opening Balance (ml)", "Hour", "Bar_A", "Brand_X"}

		Convey("When reading a CSV header", func() {
			path := writeFile(dir, "template.csv", "\ufeffOpening Balance (ml),Hour,Bar_A,Brand_X\n")
			tmpl, err := artifacts.ReadTemplate(path)

			Convey("Then the header becomes the column list", func() {
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, want)
			})
		})

		Convey("When reading a YAML list", func() {
			path := writeFile(dir, "template.yaml", "- Opening Balance (ml)\n- Hour\n- Bar_A\n- Brand_X\n")
			tmpl, err := artifacts.ReadTemplate(path)

			Convey("Then the list becomes the column list", func() {
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, want)
			})
		})

		Convey("When reading a JSON document with a columns key", func() {
			path := writeFile(dir, "template.json", `{"columns": ["Opening Balance (ml)", "Hour", "Bar_A", "Brand_X"]}`)
			tmpl, err := artifacts.ReadTemplate(path)

			Convey("Then the columns key is used", func() {
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, want)
			})
		})

		Convey("When reading an XLSX header row", func() {
			f := excelize.NewFile()
			row := []interface{}{"Opening Balance (ml)", "Hour", "Bar_A", "Brand_X"}
			So(f.SetSheetRow("Sheet1", "A1", &row), ShouldBeNil)
			So(f.SetSheetRow("Sheet1", "A2", &[]interface{}{500, 3, 1, 0}), ShouldBeNil)
			path := filepath.Join(dir, "template.xlsx")
			So(f.SaveAs(path), ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			tmpl, err := artifacts.ReadTemplate(path)

			Convey("Then only the first row is used", func() {
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, want)
			})
		})

		Convey("When the extension is unknown", func() {
			path := writeFile(dir, "X_feature_template.pkl", "\x80\x04")
			_, err := artifacts.ReadTemplate(path)

			Convey("Then the format is rejected", func() {
				So(errors.Is(err, artifacts.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})

		Convey("When the CSV is empty", func() {
			path := writeFile(dir, "empty.csv", "")
			_, err := artifacts.ReadTemplate(path)

			Convey("Then the template is invalid", func() {
				So(errors.Is(err, features.ErrInvalidTemplate), ShouldBeTrue)
			})
		})
	})
}

func TestLoader(t *testing.T) {
	Convey("Given a loader over artifact files", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()
		dir := t.TempDir()
		modelPath := writeFile(dir, "model.json", modelJSON)
		templatePath := writeFile(dir, "template.csv", "Hour,Bar_A,Bar_B\n")

		Convey("When loading both artifacts", func() {
			l := artifacts.NewLoader(modelPath, templatePath)
			set, err := l.Load(ctx)

			Convey("Then the set holds the model and template", func() {
				So(err, ShouldBeNil)
				So(set.Model.Kind(), ShouldEqual, regressor.KindLinear)
				So(set.Template.Columns(), ShouldResemble, []string{"Hour", "Bar_A", "Bar_B"})
			})

			Convey("And later calls return the cached instances without rereading", func() {
				So(os.Remove(modelPath), ShouldBeNil)
				So(os.Remove(templatePath), ShouldBeNil)

				m, err := l.Model(ctx)
				So(err, ShouldBeNil)
				So(m, ShouldEqual, set.Model)

				tmpl, err := l.Template(ctx)
				So(err, ShouldBeNil)
				So(tmpl.Columns(), ShouldResemble, set.Template.Columns())
			})
		})

		Convey("When the model file is missing", func() {
			l := artifacts.NewLoader(filepath.Join(dir, "missing.json"), templatePath)
			_, err := l.Load(ctx)

			Convey("Then an artifact load error names the model", func() {
				So(errors.Is(err, artifacts.ErrArtifactLoad), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
				var le *artifacts.LoadError
				So(errors.As(err, &le), ShouldBeTrue)
				So(le.Artifact, ShouldEqual, artifacts.ArtifactModel)
			})

			Convey("And the failure is cached even after the file appears", func() {
				writeFile(dir, "missing.json", modelJSON)
				_, err := l.Model(ctx)
				So(errors.Is(err, artifacts.ErrArtifactLoad), ShouldBeTrue)
			})
		})

		Convey("When the template is corrupt", func() {
			bad := writeFile(dir, "dup.csv", "Hour,Hour\n")
			l := artifacts.NewLoader(modelPath, bad)
			_, err := l.Load(ctx)

			Convey("Then an artifact load error names the template", func() {
				So(errors.Is(err, artifacts.ErrArtifactLoad), ShouldBeTrue)
				So(errors.Is(err, features.ErrInvalidTemplate), ShouldBeTrue)
				var le *artifacts.LoadError
				So(errors.As(err, &le), ShouldBeTrue)
				So(le.Artifact, ShouldEqual, artifacts.ArtifactTemplate)
			})
		})

		Convey("When the model is not a model", func() {
			bad := writeFile(dir, "bad.json", `{"kind":"pickle"}`)
			_, err := artifacts.NewLoader(bad, templatePath).Load(ctx)

			Convey("Then it is reported as an artifact load error", func() {
				So(errors.Is(err, artifacts.ErrArtifactLoad), ShouldBeTrue)
				So(errors.Is(err, regressor.ErrInvalidModel), ShouldBeTrue)
			})
		})
	})
}
