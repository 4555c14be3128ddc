package multisig_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/x/multisig"
)

func TestAggregateBitmap(t *testing.T) {
	holders := make([]crypto.PrivateKey, 4)
	keys := make([]crypto.PublicKey, 4)
	for i := range holders {
		seed := make([]byte, crypto.SeedSize)
		seed[0] = byte(0x40 + i)
		holders[i] = crypto.PrivKeyEd25519FromSeed(seed)
		keys[i] = holders[i].PublicKey()
	}
	policy, err := multisig.NewPolicy(keys, 2)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("bitmap layout message")

	Convey("Test aggregate bitmap", t, func() {
		coll, err := multisig.NewCollector(policy, msg)
		So(err, ShouldBeNil)

		Convey("Test empty aggregate", func() {
			agg := coll.Aggregate()
			So(agg.Count(), ShouldEqual, 0)
			So(agg.Has(0), ShouldBeFalse)
			So(agg.Signatures(), ShouldBeEmpty)
		})

		Convey("Test out of order adds align ascending", func() {
			for _, i := range []uint8{3, 0, 2} {
				sig, err := holders[i].Sign(msg)
				So(err, ShouldBeNil)
				So(coll.Add(i, sig), ShouldBeNil)
			}

			agg := coll.Aggregate()
			So(agg.Count(), ShouldEqual, 3)
			So(agg.Has(0), ShouldBeTrue)
			So(agg.Has(1), ShouldBeFalse)
			So(agg.Has(2), ShouldBeTrue)
			So(agg.Has(3), ShouldBeTrue)

			// The signature list is aligned with ascending index
			// order, whatever order the holders reported in.
			sigs := agg.Signatures()
			So(sigs, ShouldHaveLength, 3)
			So(keys[0].Verify(msg, sigs[0]), ShouldBeTrue)
			So(keys[2].Verify(msg, sigs[1]), ShouldBeTrue)
			So(keys[3].Verify(msg, sigs[2]), ShouldBeTrue)
		})

		Convey("Test bitmap width covers the policy limit", func() {
			agg := coll.Aggregate()
			So(agg.Has(multisig.MaxKeys), ShouldBeFalse)
			So(len(agg.Bitmap()), ShouldEqual, multisig.BitmapSize)
		})
	})
}
