package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webScrapbookRDF = `<?xml version="1.0"?>
<RDF:RDF xmlns:MAF="http://maf.mozdev.org/metadata/rdf#"
         xmlns:NC="http://home.netscape.com/NC-rdf#"
         xmlns:RDF="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <RDF:Description RDF:about="urn:root">
    <MAF:originalurl RDF:resource="https://terokarvinen.com/"/>
    <MAF:title RDF:resource="Tero Karvinen - Learn Free software with me"/>
    <MAF:archivetime RDF:resource="Sat, 15 Jun 2024 00:00:00 GMT"/>
    <MAF:indexfilename RDF:resource="index.html"/>
    <MAF:charset RDF:resource="UTF-8"/>
  </RDF:Description>
</RDF:RDF>`

func TestParseWebScrapbook(t *testing.T) {
	d, err := Parse(webScrapbookRDF)
	require.NoError(t, err)

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, "https://terokarvinen.com/", d.Values["originalurl"])
	assert.Equal(t, "Tero Karvinen - Learn Free software with me", d.Values["title"])
	assert.Equal(t, "index.html", d.Values["indexfilename"])
	assert.NotContains(t, d.Values, "charset")

	assert.True(t, d.HasArchiveTime)
	assert.Equal(t, "2024-06-15 w24 Sat", d.Archived)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, d.ArchiveTime.Year(), d.Year)

	assert.True(t, d.HasHost)
	assert.Equal(t, "terokarvinen.com", d.Host)
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		d, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, 0, d.Len())
		assert.False(t, d.HasArchiveTime)
		assert.False(t, d.HasHost)

		for _, name := range []string{"title", "year", "archived", "host", "archiveDatetime"} {
			v, ok := d.Get(name)
			assert.False(t, ok, name)
			assert.Empty(t, v, name)
		}
	}
}

func TestGet(t *testing.T) {
	d, err := Parse(webScrapbookRDF)
	require.NoError(t, err)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "title", want: "Tero Karvinen - Learn Free software with me", wantOK: true},
		{name: "originalurl", want: "https://terokarvinen.com/", wantOK: true},
		{name: "archived", want: "2024-06-15 w24 Sat", wantOK: true},
		{name: "year", want: "2024", wantOK: true},
		{name: "host", want: "terokarvinen.com", wantOK: true},
		{name: "archiveDatetime", want: "2024-06-15T00:00:00Z", wantOK: true},
		{name: "nonexistingkey", want: "", wantOK: false},
		{name: "charset", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Get(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetNil(t *testing.T) {
	var d *Descriptor
	v, ok := d.Get("title")
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, 0, d.Len())
}

func TestParseOnlyGrandchildren(t *testing.T) {
	const rdf = `<r xmlns:m="urn:m">
  <m:title v="root child, ignored"/>
  <c>
    <m:title v="grandchild"/>
    <d><m:originalurl v="http://deep.example/ignored"/></d>
  </c>
</r>`

	d, err := Parse(rdf)
	require.NoError(t, err)
	assert.Equal(t, "grandchild", d.Values["title"])
	assert.NotContains(t, d.Values, "originalurl")
	assert.False(t, d.HasHost)
}

func TestParseSkipsNamespaceDeclarations(t *testing.T) {
	const rdf = `<r><c><title xmlns="urn:x" xmlns:a="urn:a" a:value="Kept"/></c></r>`

	d, err := Parse(rdf)
	require.NoError(t, err)
	assert.Equal(t, "Kept", d.Values["title"])
}

func TestParseLaterValueWins(t *testing.T) {
	const rdf = `<r><c><title v="first"/><title v="second"/></c></r>`

	d, err := Parse(rdf)
	require.NoError(t, err)
	assert.Equal(t, "second", d.Values["title"])
}

func TestParseDerivedFields(t *testing.T) {
	tests := []struct {
		name         string
		archivetime  string
		originalurl  string
		wantArchived string
		wantYear     int
		wantHost     string
	}{
		{
			name:         "new year ISO week belongs to previous year",
			archivetime:  "Fri, 01 Jan 2021 10:00:00 +0000",
			originalurl:  "http://example.com:8080/path?q=1",
			wantArchived: "2021-01-01 w53 Fri",
			wantYear:     2021,
			wantHost:     "example.com:8080",
		},
		{
			name:         "without weekday and with user info",
			archivetime:  "3 Mar 2023 23:59:59 -0500",
			originalurl:  "https://user@example.org/",
			wantArchived: "2023-03-03 w09 Fri",
			wantYear:     2023,
			wantHost:     "user@example.org",
		},
		{
			name:         "url without scheme has no host",
			archivetime:  "Mon, 30 Dec 2024 08:00:00 GMT",
			originalurl:  "terokarvinen.com/",
			wantArchived: "2024-12-30 w01 Mon",
			wantYear:     2024,
			wantHost:     "",
		},
		{
			name:         "bad escape in path keeps host",
			archivetime:  "Mon, 30 Dec 2024 08:00:00 GMT",
			originalurl:  "http://x.com/%zz",
			wantArchived: "2024-12-30 w01 Mon",
			wantYear:     2024,
			wantHost:     "x.com",
		},
		{
			name:         "bad escape in fragment keeps host",
			archivetime:  "Mon, 30 Dec 2024 08:00:00 GMT",
			originalurl:  "https://user@x.com:81#%zz",
			wantArchived: "2024-12-30 w01 Mon",
			wantYear:     2024,
			wantHost:     "user@x.com:81",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rdf := `<r><c><archivetime v="` + tt.archivetime + `"/><originalurl v="` + tt.originalurl + `"/></c></r>`

			d, err := Parse(rdf)
			require.NoError(t, err)
			assert.Equal(t, tt.wantArchived, d.Archived)
			assert.Equal(t, tt.wantYear, d.Year)
			assert.Equal(t, tt.wantHost, d.Host)
			assert.True(t, d.HasHost)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		rdf  string
	}{
		{name: "bad date", rdf: `<r><c><archivetime v="yesterday-ish"/></c></r>`},
		{name: "bad url", rdf: `<r><c><originalurl v="http://[::1"/></c></r>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.rdf)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Nil(t, d)
		})
	}
}

func TestParseBrokenXML(t *testing.T) {
	_, err := Parse(`<r><c><title v="x"/>`)
	require.Error(t, err)
}
