package integration

import (
	"context"
	"testing"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/post"
	"github.com/aayushkhanna09/rahi-app/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Integration(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	postRepo := factory.NewPostRepository()
	userRepo := factory.NewUserRepository()
	service := post.NewPostService(postRepo, userRepo)
	ctx := context.Background()

	author := testutils.CreateTestUser("author@example.com")
	require.NoError(t, userRepo.Create(ctx, author))

	t.Run("FeedIsNewestFirst", func(t *testing.T) {
		for _, region := range []string{"Delhi", "Goa", "Karnataka"} {
			_, err := postRepo.Create(ctx, testutils.CreateTestPost(author.ID, region))
			require.NoError(t, err)
		}

		feed, err := service.Feed(ctx, 10)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, "Karnataka", feed[0].Region)
		assert.Equal(t, "Delhi", feed[2].Region)

		limited, err := service.Feed(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("LikeIsIdempotentAndReversible", func(t *testing.T) {
		created, err := postRepo.Create(ctx, testutils.CreateTestPost(author.ID, "Rajasthan"))
		require.NoError(t, err)

		require.NoError(t, service.Like(ctx, created.ID, "fan-1"))
		require.NoError(t, service.Like(ctx, created.ID, "fan-1"))
		require.NoError(t, service.Like(ctx, created.ID, "fan-2"))

		liked, err := postRepo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, liked.Likes)
		assert.ElementsMatch(t, []string{"fan-1", "fan-2"}, liked.LikedBy)

		require.NoError(t, service.Unlike(ctx, created.ID, "fan-1"))

		liked, err = postRepo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, liked.Likes)
		assert.Equal(t, []string{"fan-2"}, liked.LikedBy)
	})

	t.Run("LikeMissingPostFails", func(t *testing.T) {
		err := service.Like(ctx, "no-such-post", "fan-1")
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("CommentsCarryAuthorName", func(t *testing.T) {
		created, err := postRepo.Create(ctx, testutils.CreateTestPost(author.ID, "Maharashtra"))
		require.NoError(t, err)

		comment, err := service.AddComment(ctx, created.ID, author.ID, "Lovely place")
		require.NoError(t, err)
		assert.Equal(t, author.DisplayName, comment.AuthorName)

		comments, err := service.Comments(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Lovely place", comments[0].Text)
	})

	t.Run("PostsByAuthor", func(t *testing.T) {
		other := testutils.CreateTestUser("other@example.com")
		require.NoError(t, userRepo.Create(ctx, other))
		_, err := postRepo.Create(ctx, testutils.CreateTestPost(other.ID, "Goa"))
		require.NoError(t, err)

		mine, err := service.FindByAuthor(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, other.ID, mine[0].AuthorID)
	})
}
