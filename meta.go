package inox2d

// PuppetAllowedUsers states who is allowed to use the puppet.
type PuppetAllowedUsers uint8

const (
	AllowOnlyAuthor   PuppetAllowedUsers = iota // only the author(s) may use the puppet
	AllowOnlyLicensee                           // only licensee(s) may use the puppet
	AllowEveryone                               // everyone may use the model
)

// PuppetAllowedRedistribution states whether the puppet may be redistributed.
type PuppetAllowedRedistribution uint8

const (
	RedistributionProhibited      PuppetAllowedRedistribution = iota // redistribution is prohibited
	RedistributionViralLicense                                       // only under the same license as the original
	RedistributionCopyleftLicense                                    // may be redistributed under a different license
)

// PuppetAllowedModification states whether the puppet may be modified.
type PuppetAllowedModification uint8

const (
	ModificationProhibited        PuppetAllowedModification = iota // modification is prohibited
	ModificationAllowPersonal                                      // modification for personal use only
	ModificationAllowRedistribute                                  // modification with redistribution allowed
)

// PuppetUsageRights captures the terms of usage of a puppet. Pure data;
// nothing in this package enforces it.
type PuppetUsageRights struct {
	AllowedUsers        PuppetAllowedUsers
	AllowViolence       bool
	AllowSexual         bool
	AllowCommercial     bool
	AllowRedistribution PuppetAllowedRedistribution
	AllowModification   PuppetAllowedModification
	RequireAttribution  bool
}

// PuppetMeta holds puppet meta information. Optional string fields are empty
// when unset; Rights is nil when unspecified.
type PuppetMeta struct {
	// Name of the puppet.
	Name string
	// Version of the model spec the puppet was authored against.
	Version string
	// Rigger(s) of the puppet.
	Rigger string
	// Artist(s) of the puppet.
	Artist string
	// Usage rights, nil when unspecified.
	Rights *PuppetUsageRights
	// Copyright string.
	Copyright string
	// URL of the license.
	LicenseURL string
	// Contact information of the first author.
	Contact string
	// Link to the origin of this puppet.
	Reference string
	// Texture ID of the puppet's thumbnail. Negative when unset.
	ThumbnailID int
	// PreservePixels keeps pixel borders sharp; useful for pixel-art puppets.
	PreservePixels bool
}

// DefaultMeta returns a PuppetMeta stamped with the given spec version.
// The version is injected here rather than read from a package constant so
// callers can target multiple format versions.
func DefaultMeta(version string) PuppetMeta {
	return PuppetMeta{Version: version, ThumbnailID: -1}
}

// PuppetPhysics holds the global physics settings of a puppet. Carried as
// data only; simulation is out of scope for this package.
type PuppetPhysics struct {
	PixelsPerMeter float64
	Gravity        float64
}

// DefaultPhysics returns the conventional physics settings.
func DefaultPhysics() PuppetPhysics {
	return PuppetPhysics{PixelsPerMeter: 1000, Gravity: 9.8}
}
