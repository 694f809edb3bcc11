package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"payarakit/internal/descriptor"
	"payarakit/internal/product"
	"payarakit/internal/remote"
)

const (
	microPlugin  = "fish.payara.maven.plugins:payara-micro-maven-plugin"
	cloudPlugin  = "fish.payara.maven.plugins:payara-cloud-maven-plugin"
	serverPlugin = "fish.payara.maven.plugins:payara-server-maven-plugin:1.0.0-Alpha3"
	agent        = "-agentlib:jdwp=transport=dt_socket,server=n,suspend=n,address="
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "micro maven default start with debug",
			req:  Request{Line: product.Micro, Backend: product.Maven, Action: Start, Debug: true},
			want: "mvn package " + microPlugin + ":start -Ddebug=" + agent + "9007",
		},
		{
			name: "micro maven blank debug port falls back",
			req: Request{Line: product.Micro, Backend: product.Maven, Action: Start, Debug: true,
				Flags: descriptor.Flags{DebugPort: "  "}},
			want: "mvn package " + microPlugin + ":start -Ddebug=" + agent + "9007",
		},
		{
			name: "micro maven uber jar wins over exploded",
			req: Request{Line: product.Micro, Backend: product.Maven, Action: Start,
				Flags: descriptor.Flags{UseUberJar: true, Exploded: true}},
			want: "mvn " + microPlugin + ":bundle " + microPlugin + ":start",
		},
		{
			name: "micro maven exploded start with custom debug port",
			req: Request{Line: product.Micro, Backend: product.Maven, Action: Start, Debug: true,
				Flags: descriptor.Flags{Exploded: true, DebugPort: "5005"}},
			want: "mvn resources:resources compiler:compile war:exploded " + microPlugin +
				":start -Dexploded=true -DdeployWar=true -Ddebug=" + agent + "5005",
		},
		{
			name: "micro maven reload",
			req: Request{Line: product.Micro, Backend: product.Maven, Action: Reload,
				Flags: descriptor.Flags{Exploded: true}},
			want: "mvn resources:resources compiler:compile war:exploded " + microPlugin + ":reload",
		},
		{
			name: "micro maven stop",
			req:  Request{Line: product.Micro, Backend: product.Maven, Action: Stop},
			want: "mvn " + microPlugin + ":stop",
		},
		{
			name: "micro maven bundle",
			req:  Request{Line: product.Micro, Backend: product.Maven, Action: Bundle},
			want: "mvn " + microPlugin + ":bundle",
		},
		{
			name: "micro gradle start ignores uber jar",
			req: Request{Line: product.Micro, Backend: product.Gradle, Action: Start,
				Flags: descriptor.Flags{UseUberJar: true}},
			want: "gradle build microStart -DpayaraMicro.deployWar=true",
		},
		{
			name: "micro gradle exploded start with debug",
			req: Request{Line: product.Micro, Backend: product.Gradle, Action: Start, Debug: true,
				Flags: descriptor.Flags{Exploded: true}},
			want: "gradle warExplode microStart -DpayaraMicro.deployWar=true -DpayaraMicro.exploded=true -DpayaraMicro.debug=" + agent + "9007",
		},
		{
			name: "micro gradle reload",
			req: Request{Line: product.Micro, Backend: product.Gradle, Action: Reload,
				Flags: descriptor.Flags{Exploded: true}},
			want: "gradle warExplode microReload",
		},
		{
			name: "micro gradle bundle",
			req:  Request{Line: product.Micro, Backend: product.Gradle, Action: Bundle},
			want: "gradle microBundle",
		},
		{
			name: "custom executable",
			req:  Request{Line: product.Micro, Backend: product.Gradle, Action: Stop, Executable: "./gradlew"},
			want: "./gradlew microStop",
		},
		{
			name: "cloud deploy",
			req:  Request{Line: product.Cloud, Backend: product.Maven, Action: Deploy},
			want: "mvn package " + cloudPlugin + ":deploy",
		},
		{
			name: "cloud dev",
			req:  Request{Line: product.Cloud, Backend: product.Maven, Action: Dev},
			want: "mvn package " + cloudPlugin + ":dev",
		},
		{
			name: "cloud login",
			req:  Request{Line: product.Cloud, Backend: product.Maven, Action: Login},
			want: "mvn " + cloudPlugin + ":login",
		},
		{
			name: "cloud list applications with selectors",
			req: Request{Line: product.Cloud, Backend: product.Maven, Action: ListApplications,
				Subscription: "dev", Namespace: "team-a"},
			want: "mvn " + cloudPlugin + ":list-applications -DsubscriptionName='dev' -DnamespaceName='team-a'",
		},
		{
			name: "cloud list applications omits loading placeholder",
			req: Request{Line: product.Cloud, Backend: product.Maven, Action: ListApplications,
				Subscription: "dev", Namespace: remote.Loading},
			want: "mvn " + cloudPlugin + ":list-applications -DsubscriptionName='dev'",
		},
		{
			name: "cloud list namespaces without subscription",
			req:  Request{Line: product.Cloud, Backend: product.Maven, Action: ListNamespaces, Subscription: " "},
			want: "mvn " + cloudPlugin + ":list-namespaces",
		},
		{
			name: "server start",
			req:  Request{Line: product.Server, Backend: product.Maven, Action: Start},
			want: "mvn package " + serverPlugin + ":dev",
		},
		{
			name: "server exploded debug start",
			req: Request{Line: product.Server, Backend: product.Maven, Action: Start, Debug: true,
				Flags: descriptor.Flags{Exploded: true}},
			want: "mvn resources:resources compiler:compile war:exploded " + serverPlugin +
				":dev -Dpayara.exploded=true -Dpayara.debug=" + agent + "9007",
		},
		{
			name: "transform",
			req: Request{Line: product.Micro, Backend: product.Maven, Action: Transform,
				Source: "/src/app", Target: "/out/app-JakartaEE10"},
			want: "mvn package fish.payara.transformer:fish.payara.transformer.maven:0.2.14:run -DselectedSource=/src/app -DselectedTarget=/out/app-JakartaEE10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Synthesize(tt.req)
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			if got := cmd.String(); got != tt.want {
				t.Fatalf("String() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestSynthesizeUnsupported(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"maven reload without exploded", Request{Line: product.Micro, Backend: product.Maven, Action: Reload}},
		{"gradle reload without exploded", Request{Line: product.Micro, Backend: product.Gradle, Action: Reload}},
		{"gradle transform", Request{Line: product.Micro, Backend: product.Gradle, Action: Transform}},
		{"server transform", Request{Line: product.Server, Backend: product.Maven, Action: Transform}},
		{"micro deploy", Request{Line: product.Micro, Backend: product.Maven, Action: Deploy}},
		{"micro list", Request{Line: product.Micro, Backend: product.Maven, Action: ListApplications}},
		{"cloud gradle", Request{Line: product.Cloud, Backend: product.Gradle, Action: Start}},
		{"server gradle", Request{Line: product.Server, Backend: product.Gradle, Action: Start}},
		{"cloud debug start", Request{Line: product.Cloud, Backend: product.Maven, Action: Start, Debug: true}},
		{"cloud reload", Request{Line: product.Cloud, Backend: product.Maven, Action: Reload,
			Flags: descriptor.Flags{Exploded: true}}},
		{"server stop", Request{Line: product.Server, Backend: product.Maven, Action: Stop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(tt.req)
			if !errors.Is(err, ErrUnsupported) {
				t.Fatalf("expected ErrUnsupported, got %v", err)
			}
			var ue *UnsupportedError
			if !errors.As(err, &ue) || ue.Action != tt.req.Action {
				t.Fatalf("expected UnsupportedError for %s, got %v", tt.req.Action, err)
			}
		})
	}
}

func TestCloudDebugStartExplainsReason(t *testing.T) {
	_, err := Synthesize(Request{Line: product.Cloud, Backend: product.Maven, Action: Start, Debug: true})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "without --debug") {
		t.Fatalf("error %q does not tell the user to drop --debug", err)
	}
}

func TestArgsDropShellQuotes(t *testing.T) {
	cmd, err := Synthesize(Request{Line: product.Cloud, Backend: product.Maven, Action: ListNamespaces, Subscription: "my sub"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	want := []string{cloudPlugin + ":list-namespaces", "-DsubscriptionName=my sub"}
	if diff := cmp.Diff(want, cmd.Args()); diff != "" {
		t.Fatalf("Args() mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformCommand(t *testing.T) {
	cmd, err := TransformCommand(product.Micro, product.Maven, "a", "b")
	if err != nil {
		t.Fatalf("TransformCommand: %v", err)
	}
	if cmd.Executable != "mvn" || cmd.Properties[1].Value != "b" {
		t.Fatalf("unexpected command %s", cmd)
	}
}

func TestReloadCommand(t *testing.T) {
	for _, backend := range []product.Backend{product.Maven, product.Gradle} {
		if _, err := ReloadCommand(product.Micro, backend, descriptor.Flags{}); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%s: expected ErrUnsupported without exploded, got %v", backend, err)
		}
		if _, err := ReloadCommand(product.Micro, backend, descriptor.Flags{Exploded: true}); err != nil {
			t.Fatalf("%s: ReloadCommand: %v", backend, err)
		}
	}
}
