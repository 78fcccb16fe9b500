package detector

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/Sla0ui/linkrisk/internal/normalizer"
	"github.com/Sla0ui/linkrisk/internal/similarity"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Category groups rules that look for the same kind of signal
type Category string

const (
	CategoryUnsafeTLD           Category = "unsafe_tld"
	CategoryHyphenOverload      Category = "hyphen_overload"
	CategoryBrandImpersonation  Category = "brand_impersonation"
	CategoryKeywordCluster      Category = "keyword_cluster"
	CategoryPhishingKeyword     Category = "phishing_keyword"
	CategoryNumericToken        Category = "numeric_token"
	CategoryDeliveryScam        Category = "delivery_scam"
	CategoryEncodedRedirect     Category = "encoded_redirect"
	CategoryHomoglyph           Category = "homoglyph"
	CategoryDigitSubstitution   Category = "digit_substitution"
	CategoryBrandSimilarity     Category = "brand_similarity"
	CategoryLongURL             Category = "long_url"
	CategoryExcessiveSubdomains Category = "excessive_subdomains"
)

// Rule is one weighted detector. Rules are immutable once the catalogue is built.
type Rule struct {
	ID       string
	Category Category
	Weight   int
	Message  string
	match    func(*Subject) bool
}

// Matches reports whether the rule fires for s
func (r Rule) Matches(s *Subject) bool {
	return r.match(s)
}

// Subject is a normalized input together with the literal hits the catalogue
// precomputes for it. It is built per analysis and never shared.
type Subject struct {
	normalizer.Input

	tldHits      map[int]bool
	brandHits    map[int]bool
	keywordHits  map[int]bool
	deliveryHits map[int]bool
}

// Catalogue is the ordered, read-only rule set
type Catalogue struct {
	rules []Rule

	tlds     *termMatcher
	brands   *termMatcher
	keywords *termMatcher
	delivery *termMatcher
}

var (
	numericRun = regexp.MustCompile(`[0-9]{3,}`)
	base64Like = regexp.MustCompile(`^[a-zA-Z0-9+/]{12,}={0,2}$`)
	hexLike    = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)

	// Greek and Coptic, Cyrillic, Cyrillic Supplement, Cyrillic Extended-C,
	// Greek Extended, Cyrillic Extended-A and Cyrillic Extended-B
	homoglyphBlocks = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0370, Hi: 0x052f, Stride: 1},
			{Lo: 0x1c80, Hi: 0x1c8f, Stride: 1},
			{Lo: 0x1f00, Hi: 0x1fff, Stride: 1},
			{Lo: 0x2de0, Hi: 0x2dff, Stride: 1},
			{Lo: 0xa640, Hi: 0xa69f, Stride: 1},
		},
	}

	defaultCatalogue *Catalogue
	catalogueOnce    sync.Once
)

// Default returns the process-wide catalogue, building it on first use
func Default() *Catalogue {
	catalogueOnce.Do(func() {
		defaultCatalogue = newCatalogue()
	})
	return defaultCatalogue
}

func newCatalogue() *Catalogue {
	c := &Catalogue{
		tlds:     newTermMatcher(unsafeTLDs),
		brands:   newTermMatcher(brands),
		keywords: newTermMatcher(phishingKeywords),
		delivery: newTermMatcher(deliveryWords),
	}

	for i, tld := range unsafeTLDs {
		c.add(Rule{
			ID:       "unsafe-tld:" + tld,
			Category: CategoryUnsafeTLD,
			Weight:   90,
			Message:  fmt.Sprintf("Uses high-risk top-level domain %q", tld),
			match:    func(s *Subject) bool { return s.tldHits[i] },
		})
	}

	c.add(Rule{
		ID:       "hyphen-overload",
		Category: CategoryHyphenOverload,
		Weight:   40,
		Message:  fmt.Sprintf("Host contains %d or more hyphens", hyphenLimit),
		match:    func(s *Subject) bool { return strings.Count(s.Host, "-") >= hyphenLimit },
	})

	for i, brand := range brands {
		c.add(Rule{
			ID:       "brand:" + brand,
			Category: CategoryBrandImpersonation,
			Weight:   50,
			Message:  fmt.Sprintf("Mentions brand %q outside its official domain", brand),
			match: func(s *Subject) bool {
				return s.brandHits[i] && !isOfficialHost(s.Host, brand)
			},
		})
	}

	c.add(Rule{
		ID:       "keyword-cluster:" + strings.Join(keywordCluster, "+"),
		Category: CategoryKeywordCluster,
		Weight:   50,
		Message:  fmt.Sprintf("Combines the keywords %s", quoteAll(keywordCluster)),
		match: func(s *Subject) bool {
			found := 0
			for _, word := range keywordCluster {
				if strings.Contains(s.TrimmedLower, word) {
					found++
				}
			}
			return found >= 2
		},
	})

	for i, keyword := range phishingKeywords {
		c.add(Rule{
			ID:       "keyword:" + keyword,
			Category: CategoryPhishingKeyword,
			Weight:   25,
			Message:  fmt.Sprintf("Host contains phishing keyword %q", keyword),
			match:    func(s *Subject) bool { return s.keywordHits[i] },
		})
	}

	c.add(Rule{
		ID:       "numeric-token",
		Category: CategoryNumericToken,
		Weight:   25,
		Message:  "Host contains a run of three or more digits",
		match:    func(s *Subject) bool { return numericRun.MatchString(s.Host) },
	})

	for i, word := range deliveryWords {
		c.add(Rule{
			ID:       "delivery:" + word,
			Category: CategoryDeliveryScam,
			Weight:   40,
			Message:  fmt.Sprintf("References delivery-scam term %q", word),
			match:    func(s *Subject) bool { return s.deliveryHits[i] },
		})
	}

	c.add(Rule{
		ID:       "encoded-redirect",
		Category: CategoryEncodedRedirect,
		Weight:   40,
		Message:  "Last parameter value looks base64 or hex encoded",
		match:    func(s *Subject) bool { return hasEncodedRedirect(s.TrimmedLower) },
	})

	c.add(Rule{
		ID:       "homoglyph",
		Category: CategoryHomoglyph,
		Weight:   40,
		Message:  "Contains Greek or Cyrillic look-alike characters",
		match:    func(s *Subject) bool { return hasHomoglyph(s.Raw) },
	})

	for _, sub := range digitSubstitutions {
		digit := sub.digit
		c.add(Rule{
			ID:       "digit-substitution:" + string(digit),
			Category: CategoryDigitSubstitution,
			Weight:   45,
			Message:  fmt.Sprintf("Digit '%c' may stand in for the letter '%c'", digit, sub.letter),
			match:    func(s *Subject) bool { return strings.ContainsRune(s.Host, digit) },
		})
	}

	for _, brand := range brands {
		c.add(Rule{
			ID:       "brand-similarity:" + brand,
			Category: CategoryBrandSimilarity,
			Weight:   50,
			Message:  fmt.Sprintf("Host closely resembles brand %q", brand),
			match: func(s *Subject) bool {
				return similarity.Within(domainLabel(s.Host), brand, maxBrandEdits) && !isOfficialHost(s.Host, brand)
			},
		})
	}

	c.add(Rule{
		ID:       "long-url",
		Category: CategoryLongURL,
		Weight:   20,
		Message:  fmt.Sprintf("URL is longer than %d characters", longURLThreshold),
		match:    func(s *Subject) bool { return utf8.RuneCountInString(s.Raw) > longURLThreshold },
	})

	c.add(Rule{
		ID:       "excessive-subdomains",
		Category: CategoryExcessiveSubdomains,
		Weight:   25,
		Message:  "Host has an excessive number of subdomains",
		match:    func(s *Subject) bool { return strings.Count(s.Host, ".") > maxHostDots },
	})

	return c
}

func (c *Catalogue) add(r Rule) {
	c.rules = append(c.rules, r)
}

// Rules returns the rules in evaluation order
func (c *Catalogue) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Len returns the number of rules
func (c *Catalogue) Len() int {
	return len(c.rules)
}

// Subject prepares in for rule evaluation
func (c *Catalogue) Subject(in normalizer.Input) *Subject {
	return &Subject{
		Input:        in,
		tldHits:      c.tlds.hits(in.Host),
		brandHits:    c.brands.hits(in.Host),
		keywordHits:  c.keywords.hits(in.Host),
		deliveryHits: c.delivery.hits(in.TrimmedLower),
	}
}

// Filter returns the rules whose ID, category or message fuzzily matches query.
// An empty query returns every rule.
func (c *Catalogue) Filter(query string) []Rule {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Rules()
	}

	var matched []Rule
	for _, r := range c.rules {
		if fuzzy.MatchFold(query, r.ID) ||
			fuzzy.MatchFold(query, string(r.Category)) ||
			fuzzy.MatchFold(query, r.Message) {
			matched = append(matched, r)
		}
	}
	return matched
}

// isOfficialHost reports whether host is <brand>.com or one of its subdomains
func isOfficialHost(host, brand string) bool {
	official := brand + ".com"
	return host == official || strings.HasSuffix(host, "."+official)
}

// domainLabel returns the registrable label of host, e.g. "go0gle" for
// "login.go0gle.co.uk". Without a public suffix match it falls back to the
// label left of the last dot; hosts without a dot are returned whole.
func domainLabel(host string) string {
	if domain := RegistrableDomain(host); domain != "" {
		label, _, _ := strings.Cut(domain, ".")
		return label
	}

	i := strings.LastIndex(host, ".")
	if i < 0 {
		return host
	}
	rest := host[:i]
	if j := strings.LastIndex(rest, "."); j >= 0 {
		return rest[j+1:]
	}
	return rest
}

// hasEncodedRedirect inspects the value after the last '=' that is not base64 padding
func hasEncodedRedirect(s string) bool {
	body := strings.TrimRight(s, "=")
	i := strings.LastIndex(body, "=")
	if i < 0 {
		return false
	}
	value := s[i+1:]
	return base64Like.MatchString(value) || hexLike.MatchString(value)
}

// hasHomoglyph reports any rune from the Greek or Cyrillic blocks, or from
// those scripts wherever else Unicode places them
func hasHomoglyph(s string) bool {
	for _, r := range s {
		if unicode.In(r, homoglyphBlocks, unicode.Cyrillic, unicode.Greek) {
			return true
		}
	}
	return false
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, " and ")
}
