// Package content owns the editable site documents (page copy, settings)
// and the draft/save workflow the admin panel uses to change them.
package content

// HeroContent is the home page hero block.
type HeroContent struct {
	Tagline         string `json:"tagline"`
	Headline        string `json:"headline"`
	Description     string `json:"description"`
	PrimaryButton   Button `json:"primary_button"`
	SecondaryButton Button `json:"secondary_button"`
	BackgroundImage string `json:"background_image"`
}

// Button is a labeled link.
type Button struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// TrustBadge is a small icon + caption pair under the hero.
type TrustBadge struct {
	ID       string `json:"id"`
	Icon     string `json:"icon"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Benefit is one entry in the "why choose us" section.
type Benefit struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Step is one entry in the "how it works" section.
type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a customer quote with a star rating.
type Testimonial struct {
	ID       string `json:"id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Location string `json:"location"`
}

// SectionHeading titles a page section.
type SectionHeading struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SiteContent is the aggregate document with all editable page copy.
type SiteContent struct {
	Hero              HeroContent    `json:"hero"`
	TrustBadges       []TrustBadge   `json:"trust_badges"`
	FeaturedSection   SectionHeading `json:"featured_section"`
	CategoriesSection SectionHeading `json:"categories_section"`
	WhyChooseUs       WhyChooseUs    `json:"why_choose_us"`
	HowItWorks        HowItWorks     `json:"how_it_works"`
	Testimonials      Testimonials   `json:"testimonials"`
	CTASection        CTASection     `json:"cta_section"`
	ContactBanner     ContactBanner  `json:"contact_banner"`
}

// WhyChooseUs is the benefits section.
type WhyChooseUs struct {
	Title    string    `json:"title"`
	Image    string    `json:"image"`
	Benefits []Benefit `json:"benefits"`
}

// HowItWorks is the ordering steps section.
type HowItWorks struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// Testimonials is the customer quotes section.
type Testimonials struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

// CTASection is the closing call-to-action block.
type CTASection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"button_text"`
	ButtonLink  string `json:"button_link"`
}

// ContactBanner is the phone banner at the page foot.
type ContactBanner struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Phone    string `json:"phone"`
}

// Settings is the site-wide configuration document. Shipping rates live
// here, editable from the admin panel, rather than being hardcoded at the
// checkout.
type Settings struct {
	SiteName  string           `json:"site_name"`
	Tagline   string           `json:"tagline"`
	Contact   ContactSettings  `json:"contact"`
	Social    SocialSettings   `json:"social"`
	Shipping  ShippingSettings `json:"shipping"`
	TopBanner TopBanner        `json:"top_banner"`
}

// ContactSettings holds the farm's contact details.
type ContactSettings struct {
	Phone1      string  `json:"phone1"`
	Phone1Label string  `json:"phone1_label"`
	Phone2      string  `json:"phone2"`
	Phone2Label string  `json:"phone2_label"`
	Email       string  `json:"email"`
	Address     Address `json:"address"`
}

// Address is a postal address.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// SocialSettings holds social media links.
type SocialSettings struct {
	Facebook string `json:"facebook"`
}

// ShippingSettings holds the shipping and tax rates used by checkout.
// Amounts are cents.
type ShippingSettings struct {
	FreeShippingThresholdCents int64   `json:"free_shipping_threshold_cents"`
	FlatRateCents              int64   `json:"flat_rate_cents"`
	TaxRate                    float64 `json:"tax_rate"`
	DeliveryDays               string  `json:"delivery_days"`
}

// TopBanner is the dismissible announcement bar.
type TopBanner struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
	Link    string `json:"link"`
}
