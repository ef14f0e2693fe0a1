package cache_test

import (
	"net/url"
	"strings"
	"testing"

	"storyfeed/internal/infra/cache"
)

func TestKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	a, err := url.ParseQuery("search=go&page_size=10&user=u1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := url.ParseQuery("user=u1&search=go&page_size=10")
	if err != nil {
		t.Fatal(err)
	}

	if cache.Key("story_list_", a) != cache.Key("story_list_", b) {
		t.Errorf("keys differ for equivalent parameter sets: %q vs %q",
			cache.Key("story_list_", a), cache.Key("story_list_", b))
	}
}

func TestKey_DistinctParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{name: "different search", a: "search=go", b: "search=rust"},
		{name: "different page size", a: "search=go&page_size=10", b: "search=go&page_size=20"},
		{name: "different cursor", a: "cursor=aaa", b: "cursor=bbb"},
		{name: "extra parameter", a: "search=go", b: "search=go&user=u1"},
		{name: "empty vs one parameter", a: "", b: "search="},
		{name: "name and value swapped across separator", a: "a=b&c=d", b: "a=b&c&d="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pa, err := url.ParseQuery(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			pb, err := url.ParseQuery(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if cache.Key("p_", pa) == cache.Key("p_", pb) {
				t.Errorf("Key(%q) == Key(%q), want distinct", tt.a, tt.b)
			}
		})
	}
}

func TestKey_SeparatorsInValues(t *testing.T) {
	t.Parallel()

	// A raw '&' or '=' inside a value must not make one parameter set read
	// as another. These pairs parse identically when concatenated naively.
	a := url.Values{"search": {"x&user=y"}}
	b := url.Values{"search": {"x"}, "user": {"y"}}
	if cache.Key("story_list_", a) == cache.Key("story_list_", b) {
		t.Errorf("Key(%v) == Key(%v), want distinct", a, b)
	}

	c := url.Values{"a": {"b=c"}}
	d := url.Values{"a=b": {"c"}}
	if cache.Key("p_", c) == cache.Key("p_", d) {
		t.Errorf("Key(%v) == Key(%v), want distinct", c, d)
	}
}

func TestKey_PrefixAndShape(t *testing.T) {
	t.Parallel()

	params, err := url.ParseQuery("search=go")
	if err != nil {
		t.Fatal(err)
	}

	key := cache.Key("story_list_", params)
	if !strings.HasPrefix(key, "story_list_") {
		t.Errorf("key %q missing prefix", key)
	}
	if len(key) != len("story_list_")+16 {
		t.Errorf("key %q digest is not 16 hex characters", key)
	}
}

func TestKey_RepeatedValuesKeepOrder(t *testing.T) {
	t.Parallel()

	a, err := url.ParseQuery("user=u1&user=u2")
	if err != nil {
		t.Fatal(err)
	}
	b, err := url.ParseQuery("user=u2&user=u1")
	if err != nil {
		t.Fatal(err)
	}

	if cache.Key("p_", a) == cache.Key("p_", b) {
		t.Error("repeated values in different order produced the same key")
	}
}

func BenchmarkKey(b *testing.B) {
	params, _ := url.ParseQuery("search=golang&user=11111111-1111-1111-1111-111111111111&page_size=50&cursor=eyJjIjoxNzM1Njg5NjAwMDAwMDAwLCJpIjo0Mn0")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Key("story_list_", params)
	}
}
