// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// pathSafe lists the bytes left unescaped in drive paths, matching what
// SharePoint accepts in Graph path addressing.
const pathSafe = "/:+()%!$&',;=@"

// escape percent-encodes s, leaving unreserved characters and the bytes
// in safe untouched.
func escape(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		case safe != "" && strings.IndexByte(safe, c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// pathVariants returns the drive paths to try for a configured workbook
// path, in order. SharePoint sites expose their default document library
// as either "/Shared Documents" or "/Documents" depending on locale and
// addressing, and drive-root paths omit the library segment entirely, so
// the configured path is probed under all three spellings.
func pathVariants(p string) []string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	candidates := []string{
		p,
		strings.ReplaceAll(p, "/Shared Documents", "/Documents"),
		strings.ReplaceAll(p, "/Documents", "/Shared Documents"),
	}
	if strings.HasPrefix(p, "/Shared Documents/") {
		candidates = append(candidates, strings.TrimPrefix(p, "/Shared Documents"))
	}
	if strings.HasPrefix(p, "/Documents/") {
		candidates = append(candidates, strings.TrimPrefix(p, "/Documents"))
	}

	seen := make(map[string]bool, len(candidates))
	var variants []string
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			variants = append(variants, c)
		}
	}
	return variants
}

// driveItem is the subset of a Graph driveItem used for resolution.
type driveItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentReference struct {
		Path string `json:"path"`
	} `json:"parentReference"`
}

// tryItemByPath probes a single drive path. A 4xx response means the
// path does not exist under that spelling and is not an error.
func (c *Client) tryItemByPath(ctx context.Context, siteID, drivePath string) (id string, ok bool, err error) {
	url := fmt.Sprintf("%s/sites/%s/drive/root:%s", graphBase, siteID, escape(drivePath, pathSafe))

	resp, err := c.getRaw(ctx, url)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return "", false, nil
	}

	var item driveItem
	dec := newDecoder(resp.Body)
	if err := dec.Decode(&item); err != nil {
		return "", false, fmt.Errorf("parsing drive item from %s: %w", url, err)
	}
	return item.ID, item.ID != "", nil
}

// searchDrive searches the site drive for items matching name.
func (c *Client) searchDrive(ctx context.Context, siteID, name string) ([]driveItem, error) {
	var out struct {
		Value []driveItem `json:"value"`
	}

	url := fmt.Sprintf("%s/sites/%s/drive/root/search(q='%s')", graphBase, siteID, escape(name, ""))
	if err := c.get(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("searching drive for %q: %w", name, err)
	}
	return out.Value, nil
}

// ResolveItem finds the drive-item ID for the configured workbook path.
// It probes the path variants directly first, then falls back to a drive
// search by file name, accepting hits whose parent folder matches one of
// the folder variants. Per-step progress is written to w.
func (c *Client) ResolveItem(ctx context.Context, siteID, workbookPath string, w io.Writer) (string, error) {
	for _, p := range pathVariants(workbookPath) {
		id, ok, err := c.tryItemByPath(ctx, siteID, p)
		if err != nil {
			return "", err
		}
		if ok {
			fmt.Fprintf(w, "resolved workbook by path: %s\n", p)
			return id, nil
		}
	}

	// The configured path may arrive pre-encoded (e.g. pasted from a
	// browser), so decode it before splitting off the file name.
	decoded := workbookPath
	if u, err := url.PathUnescape(workbookPath); err == nil {
		decoded = u
	}

	name := path.Base(decoded)
	folders := pathVariants(path.Dir(strings.ReplaceAll(decoded, "\\", "/")))

	items, err := c.searchDrive(ctx, siteID, name)
	if err != nil {
		return "", err
	}

	for _, item := range items {
		parent := item.ParentReference.Path
		for _, folder := range folders {
			if strings.HasSuffix(parent, folder) || strings.Contains(parent, "/drive/root:"+folder) {
				fmt.Fprintf(w, "resolved workbook by search: %s @ %s\n", item.Name, parent)
				return item.ID, nil
			}
		}
	}

	return "", fmt.Errorf("workbook %s not found in site drive", workbookPath)
}
