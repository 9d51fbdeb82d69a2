package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

const (
	tweetImageSelector = `[data-testid="tweetPhoto"] img, img[src*="twimg.com/media"], [data-testid="card.layoutLarge.media"] img`
	minImageSide       = 100
)

var longformContainers = []string{
	".public-DraftEditor-content",
	`[class*="longform"]`,
	`[data-testid="article-content"]`,
}

var nameParam = regexp.MustCompile(`([?&])name=[^&#]*`)

// NormalizeImageURL rewrites media-host image URLs to request the original
// size. Other URLs are returned unchanged. Normalizing twice is a no-op.
func NormalizeImageURL(src string) string {
	u, err := url.Parse(src)
	if err != nil || !isMediaHost(u.Hostname()) {
		return src
	}
	if nameParam.MatchString(src) {
		return nameParam.ReplaceAllString(src, "${1}name=orig")
	}

	fragment := ""
	if i := strings.IndexByte(src, '#'); i >= 0 {
		src, fragment = src[:i], src[i:]
	}
	sep := "?"
	if strings.Contains(src, "?") {
		sep = "&"
	}
	return src + sep + "name=orig" + fragment
}

func isMediaHost(host string) bool {
	host = strings.ToLower(host)
	return host == "twimg.com" || strings.HasSuffix(host, ".twimg.com")
}

// imageSet collects unique images in first-seen order.
type imageSet struct {
	list []postdoc.Image
	seen map[string]bool
}

func (s *imageSet) push(img *goquery.Selection) {
	src := img.AttrOr("src", "")
	if src == "" || isExcludedImage(img, src) {
		return
	}
	src = NormalizeImageURL(src)
	if s.seen[src] {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[src] = true
	s.list = append(s.list, postdoc.Image{Src: src, Alt: img.AttrOr("alt", "")})
}

// isExcludedImage filters avatars, emoji and images whose declared size is
// below the threshold in both dimensions.
func isExcludedImage(img *goquery.Selection, src string) bool {
	if strings.Contains(src, "profile_images") || strings.Contains(src, "emoji") {
		return true
	}
	w, wok := dimension(img, "width")
	h, hok := dimension(img, "height")
	return wok && hok && w < minImageSide && h < minImageSide
}

func dimension(img *goquery.Selection, attr string) (int, bool) {
	v, ok := img.Attr(attr)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractImages collects images from posts written by the page author.
// Posts with no detectable author are included. When that finds nothing the
// first long-form container is scanned without scoping.
func extractImages(p *Page, pageHandle string) []postdoc.Image {
	var set imageSet
	handle := strings.ToLower(strings.TrimPrefix(pageHandle, "@"))

	p.Doc.Find(`article[data-testid="tweet"]`).Each(func(_ int, el *goquery.Selection) {
		if handle != "" {
			if author := strings.ToLower(postAuthor(el)); author != "" && author != handle {
				return
			}
		}
		el.Find(tweetImageSelector).Each(func(_ int, img *goquery.Selection) {
			set.push(img)
		})
	})

	if len(set.list) > 0 {
		return set.list
	}

	for _, selector := range longformContainers {
		container := p.Doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		container.Find("img").Each(func(_ int, img *goquery.Selection) {
			set.push(img)
		})
		break
	}
	return set.list
}

// postAuthor returns the handle of the author of one post element, without
// the leading "@".
func postAuthor(post *goquery.Selection) string {
	block := post.Find(`[data-testid="User-Name"]`).First()
	if block.Length() == 0 {
		return ""
	}

	if href := block.Find(`a[href^="/"]`).First().AttrOr("href", ""); href != "" {
		if segs := strings.Split(href, "/"); len(segs) > 1 {
			return segs[1]
		}
	}

	var handle string
	block.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := strings.TrimSpace(span.Text())
		if strings.HasPrefix(text, "@") {
			handle = strings.TrimPrefix(text, "@")
			return false
		}
		return true
	})
	return handle
}
