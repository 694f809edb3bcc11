package descriptor

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"payarakit/internal/product"
)

const microPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>hello-micro</artifactId>
  <name>Hello Micro</name>
  <build>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-war-plugin</artifactId>
      </plugin>
      <plugin>
        <groupId>fish.payara.maven.plugins</groupId>
        <artifactId>payara-micro-maven-plugin</artifactId>
        <configuration>
          <useUberJar>true</useUberJar>
          <exploded>TRUE</exploded>
          <contextRoot>/hello</contextRoot>
        </configuration>
      </plugin>
    </plugins>
  </build>
</project>`

const plainPOM = `<project>
  <artifactId>plain</artifactId>
  <build>
    <plugins>
      <plugin>
        <groupId>com.other</groupId>
        <artifactId>payara-micro-maven-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
</project>`

const profilePOM = `<project>
  <artifactId>profiled</artifactId>
  <build>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-war-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
  <profiles>
    <profile>
      <id>payara</id>
      <build>
        <plugins>
          <plugin>
            <groupId>fish.payara.maven.plugins</groupId>
            <artifactId>payara-micro-maven-plugin</artifactId>
            <configuration>
              <useUberJar>true</useUberJar>
              <contextRoot>/profiled</contextRoot>
            </configuration>
          </plugin>
        </plugins>
      </build>
    </profile>
  </profiles>
</project>`

const microGradle = `plugins {
    id 'war'
    id 'fish.payara.micro-gradle-plugin' version '1.0.4'
}

payaraMicro {
    payaraVersion = '6.2023.10'
    exploded = false
    useUberJar = true
    exploded = true
    remote = yes
}
`

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func microMaven(t *testing.T) product.Coordinate {
	t.Helper()
	c, ok := product.CoordinateFor(product.Micro, product.Maven)
	if !ok {
		t.Fatal("missing micro maven coordinate")
	}
	return c
}

func microGradleCoord(t *testing.T) product.Coordinate {
	t.Helper()
	c, ok := product.CoordinateFor(product.Micro, product.Gradle)
	if !ok {
		t.Fatal("missing micro gradle coordinate")
	}
	return c
}

func TestLocateMavenSkipsNonMatchingAndMalformed(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/proj/a-broken/pom.xml":                            "<project><<</project>",
		"/proj/b-plain/pom.xml":                             plainPOM,
		"/proj/c-app/pom.xml":                               microPOM,
		"/proj/c-app/target/classes/META-INF/maven/pom.xml": microPOM,
	})

	d, ok := NewLocator(fs, nil).Locate("/proj", product.Maven, microMaven(t))
	if !ok {
		t.Fatal("expected descriptor to be found")
	}
	if want := filepath.FromSlash("/proj/c-app/pom.xml"); d.Path() != want {
		t.Fatalf("Path() = %q, want %q", d.Path(), want)
	}
	if d.Backend() != product.Maven {
		t.Fatalf("Backend() = %v, want maven", d.Backend())
	}
}

func TestLocateMavenPluginInProfile(t *testing.T) {
	fs := newFs(t, map[string]string{"/proj/pom.xml": profilePOM})

	d, ok := NewLocator(fs, nil).Locate("/proj", product.Maven, microMaven(t))
	if !ok {
		t.Fatal("expected plugin declared in a profile build to be found")
	}
	if !IsPlugin(d, microMaven(t)) {
		t.Fatal("IsPlugin() = false for profile build")
	}

	got := Extract(d, microMaven(t))
	want := Flags{UseUberJar: true, ContextRoot: "/profiled"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateNotFound(t *testing.T) {
	fs := newFs(t, map[string]string{"/proj/pom.xml": plainPOM})
	if d, ok := NewLocator(fs, nil).Locate("/proj", product.Maven, microMaven(t)); ok || d != nil {
		t.Fatalf("expected not found, got %v", d)
	}
}

func TestLocateMissingRoot(t *testing.T) {
	if _, ok := NewLocator(afero.NewMemMapFs(), nil).Locate("/nowhere", product.Maven, microMaven(t)); ok {
		t.Fatal("expected not found for missing root")
	}
}

func TestLocateGradleMatchesAnywhereInText(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/proj/build.gradle": "// migrated away from payara-micro-gradle-plugin\napply plugin: 'war'\n",
	})
	if _, ok := NewLocator(fs, nil).Locate("/proj", product.Gradle, microGradleCoord(t)); !ok {
		t.Fatal("expected artifact id mention to qualify the build file")
	}
}

func TestIsPluginRequiresGroupAndArtifact(t *testing.T) {
	fs := newFs(t, map[string]string{"/p/pom.xml": plainPOM, "/q/pom.xml": microPOM})
	l := NewLocator(fs, nil)

	plain, err := l.Load("/p/pom.xml", product.Maven)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if IsPlugin(plain, microMaven(t)) {
		t.Fatal("artifact match with wrong group must not qualify")
	}

	micro, err := l.Load("/q/pom.xml", product.Maven)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !IsPlugin(micro, microMaven(t)) {
		t.Fatal("expected micro plugin to be detected")
	}
	cloud, _ := product.CoordinateFor(product.Cloud, product.Maven)
	if IsPlugin(micro, cloud) {
		t.Fatal("micro POM must not qualify as cloud")
	}
}

func TestExtractMaven(t *testing.T) {
	fs := newFs(t, map[string]string{"/p/pom.xml": microPOM})
	d, err := NewLocator(fs, nil).Load("/p/pom.xml", product.Maven)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := Extract(d, microMaven(t))
	want := Flags{UseUberJar: true, ContextRoot: "/hello"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractWithoutPluginSection(t *testing.T) {
	fs := newFs(t, map[string]string{"/p/pom.xml": microPOM})
	d, _ := NewLocator(fs, nil).Load("/p/pom.xml", product.Maven)
	server, _ := product.CoordinateFor(product.Server, product.Maven)
	if got := Extract(d, server); got != (Flags{}) {
		t.Fatalf("expected zero flags, got %+v", got)
	}
}

func TestExtractGradle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Flags
	}{
		{
			name: "later lines win",
			text: microGradle,
			want: Flags{UseUberJar: true, Exploded: true, PayaraVersion: "6.2023.10"},
		},
		{
			name: "no block",
			text: "plugins { id 'war' }\n",
			want: Flags{},
		},
		{
			name: "empty block",
			text: "payaraMicro { }\n",
			want: Flags{},
		},
		{
			name: "empty multi-line block",
			text: "plugins {\n    id 'war'\n}\n\npayaraMicro {\n\n}\n",
			want: Flags{},
		},
		{
			name: "extra equals sign ignored",
			text: "payaraMicro {\n  exploded = true = true\n}\n",
			want: Flags{},
		},
		{
			name: "similar names do not match",
			text: "payaraMicro {\n  explodedWar = true\n}\n",
			want: Flags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, map[string]string{"/g/build.gradle": tt.text})
			d, err := NewLocator(fs, nil).Load("/g/build.gradle", product.Gradle)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			got := Extract(d, microGradleCoord(t))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProjectName(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/m/pom.xml":         microPOM,
		"/n/pom.xml":         plainPOM,
		"/g/build.gradle":    microGradle,
		"/g/settings.gradle": "rootProject.name = 'hello-gradle'\n",
		"/h/build.gradle":    microGradle,
	})
	l := NewLocator(fs, nil)

	tests := []struct {
		path    string
		backend product.Backend
		want    string
	}{
		{"/m/pom.xml", product.Maven, "Hello Micro"},
		{"/n/pom.xml", product.Maven, "plain"},
		{"/g/build.gradle", product.Gradle, "hello-gradle"},
		{"/h/build.gradle", product.Gradle, "h"},
	}
	for _, tt := range tests {
		d, err := l.Load(tt.path, tt.backend)
		if err != nil {
			t.Fatalf("load %s: %v", tt.path, err)
		}
		if got := ProjectName(fs, d); got != tt.want {
			t.Errorf("ProjectName(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEffectiveDebugPort(t *testing.T) {
	if got := (Flags{}).EffectiveDebugPort(); got != DefaultDebugPort {
		t.Fatalf("EffectiveDebugPort() = %q, want %q", got, DefaultDebugPort)
	}
	if got := (Flags{DebugPort: "5005"}).EffectiveDebugPort(); got != "5005" {
		t.Fatalf("EffectiveDebugPort() = %q, want 5005", got)
	}
	if got := (Flags{DebugPort: "   "}).EffectiveDebugPort(); got != DefaultDebugPort {
		t.Fatalf("blank port: EffectiveDebugPort() = %q, want %q", got, DefaultDebugPort)
	}
	if got := (Flags{DebugPort: " 5005 "}).EffectiveDebugPort(); got != "5005" {
		t.Fatalf("padded port: EffectiveDebugPort() = %q, want 5005", got)
	}
}
