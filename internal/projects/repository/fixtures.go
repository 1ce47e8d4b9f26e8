package repository

import "github.com/vibe-directory/vibe-backend/internal/projects/domain"

const hotOrNotPrompt = `create a simple web app called "hot or not nft" where you enter an ethereum wallet address, and it then displays one nft at a time from the wallet and the user can mark each nft as hot or not. there's then a view to see all the hot nfts in a gallery; from there, you can click on each nft to see a larger detail of it. store the selections in local storage.

the app should use the alchemy api to load the wallet's nfts and the ensdata api to display the wallet's ENS instead of the wallet address for results.

do not over engineer. focus on the simplest possible path to successful implementation.`

// FallbackProjects is the fixed directory served by the in-memory store and
// written by the worker's seed command. Newest first.
func FallbackProjects() []domain.Project {
	const (
		author = "chrislarsc.eth"
		fid    = 192300
	)
	return []domain.Project{
		{
			ID:          "1",
			Title:       "Hot or Not NFTs on Base",
			Description: "Rate the NFTs of your favorite Farcasters like @0xdesigner @jessepollak @afrochicks @j4ck.eth and more, or of *any* wallet address",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://v0-hot-or-not-nft-app.vercel.app/",
			CreatedAt:   "2025-04-02T00:00:00Z",
			Featured:    domain.Bool(true),
			Image:       "https://v0-hot-or-not-nft-app.vercel.app/images/vibe-group.png",
			Prompt:      hotOrNotPrompt,
		},
		{
			ID:          "2",
			Title:       "Buy the vibes",
			Description: "Experience pure positive energy that will brighten your day and enhance your mood. My first Stripe integration",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://buy-the-vibe.vercel.app/",
			CreatedAt:   "2025-04-01T00:00:00Z",
		},
		{
			ID:          "3",
			Title:       "Blog entry for first-time Cursor usage",
			Description: "Today I learned how to use Cursor + MCPs. I made a simple blog entry showcasing the details of what I learned.",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://blog-bsxhf0jk6-chris-sykycoms-projects.vercel.app/",
			CreatedAt:   "2025-03-31T00:00:00Z",
		},
		{
			ID:          "4",
			Title:       "Quality builders on Icebreaker",
			Description: "A directory of everyone with the qBuilder attestation on Icebreaker.",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://v0-icebreaker-directory.vercel.app/",
			CreatedAt:   "2025-03-30T00:00:00Z",
		},
		{
			ID:          "5",
			Title:       "WHAT 2 WEAR",
			Description: "What should I wear today based on the weather in my current location?",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://77kuyhttwmmgi.mocha.app/",
			CreatedAt:   "2025-03-29T00:00:00Z",
		},
		{
			ID:          "6",
			Title:       "Personal website v2",
			Description: "First time using Lovable, this is a project directory of my vibe code projects that I am trying to keep up to date.",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://vibe-fusion-sandbox.lovable.app/",
			CreatedAt:   "2025-03-28T00:00:00Z",
			Featured:    domain.Bool(false),
			Image:       "https://img.freepik.com/free-vector/colorful-vector-vibes-peachy-background-sticker_53876-176240.jpg",
		},
		{
			ID:          "7",
			Title:       "Mycaster v2",
			Description: "I connected the Neynar API so that the Recent Casts section is showing real data.",
			Author:      author,
			AuthorFID:   fid,
			Link:        "https://v0-myspace-profile-interface.vercel.app/",
			CreatedAt:   "2025-03-27T00:00:00Z",
		},
	}
}
